// Package hcloud discovers Hetzner Cloud servers and turns them into node
// specifications that can be imported into the node pool.
//
// Servers are selected by label. The server name becomes the node hostname
// and its public IPv4 address (falling back to IPv6, then the first private
// network address) becomes the endpoint. A server labeled
// colonyctl.io/role=control-plane is imported as a control plane node; every
// other server is a worker.
//
// Listing is retried with exponential backoff while the API reports rate
// limiting or locked resources; invalid input fails immediately.
package hcloud
