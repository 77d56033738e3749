// Package routepath defines the console's route paths.
package routepath

import "strconv"

const (
	// Root is the guarded home route.
	Root = "/"
	// Login is the public login route.
	Login = "/login"
	// Logout ends the session.
	Logout = "/logout"
	// Health is the liveness probe.
	Health = "/up"
	// APIPrefix is proxied to the backend.
	APIPrefix = "/api"
	// APIPrefixSlash is the mux pattern for proxied API calls.
	APIPrefixSlash = APIPrefix + "/"
	// ClustersPrefix is the guarded cluster detail subtree.
	ClustersPrefix = "/clusters/"
)

// Cluster returns the console page for one cluster.
func Cluster(id int64) string {
	return ClustersPrefix + strconv.FormatInt(id, 10)
}
