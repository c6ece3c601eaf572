package access

import "github.com/gin-gonic/gin"

// Router registers handlers on a gin router and inserts the auth guard in
// front of every route the policy marks Authenticated.
type Router struct {
	routes gin.IRoutes
	policy Policy
	guard  gin.HandlerFunc
}

func NewRouter(routes gin.IRoutes, policy Policy, guard gin.HandlerFunc) *Router {
	return &Router{routes: routes, policy: policy, guard: guard}
}

func (r *Router) Handle(method, path string, handlers ...gin.HandlerFunc) {
	if r.policy.Level(method, path) == Authenticated {
		handlers = append([]gin.HandlerFunc{r.guard}, handlers...)
	}
	r.routes.Handle(method, path, handlers...)
}

func (r *Router) GET(path string, h ...gin.HandlerFunc)    { r.Handle("GET", path, h...) }
func (r *Router) POST(path string, h ...gin.HandlerFunc)   { r.Handle("POST", path, h...) }
func (r *Router) PUT(path string, h ...gin.HandlerFunc)    { r.Handle("PUT", path, h...) }
func (r *Router) PATCH(path string, h ...gin.HandlerFunc)  { r.Handle("PATCH", path, h...) }
func (r *Router) DELETE(path string, h ...gin.HandlerFunc) { r.Handle("DELETE", path, h...) }
