// package transport contains the HTTP/1.1 *message syntax* layer: it
// serializes a prepared request onto a raw outgoing stream and parses
// status, headers and body framing of the incoming response (RFC9110
// semantics, RFC9112 syntax).
//
// net/http components are reused on the "semantics" part
// ([net/http.Header], [net/http.NoBody], etc.)

package transport
