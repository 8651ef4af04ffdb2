// Package transport abstracts the byte stream carrying CI-V traffic.
//
// The radio session only needs a handful of operations on the link:
// write a frame, flush it onto the wire, read with a deadline, and
// close. Transport captures exactly that, so the session code does not
// care whether the bytes travel over a local USB serial port or a
// WebSocket bridge to a remote interface.
//
// Two implementations are provided:
//
//   - OpenSerial: a go.bug.st/serial port configured 8N1, the normal
//     case for a radio on USB.
//   - DialWebSocket: a gorilla/websocket client that treats binary
//     messages as a byte stream, for radios shared over the network.
package transport
