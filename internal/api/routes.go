package api

// Route describes one endpoint of the public HTTP contract.
type Route struct {
	Method string
	Path   string
}

var (
	RouteGuidanceSearch = Route{Method: "POST", Path: "/api/guidance/search"}
	RouteHealth         = Route{Method: "GET", Path: "/health"}
)
