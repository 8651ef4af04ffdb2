// Package radio implements the CI-V session layer.
//
// A Radio owns a transport.Transport and turns its unreliable,
// half-duplex-echoing byte stream into a request/response channel. Each
// command is encoded, written and flushed, then the response reader
// collects incoming bytes, decodes frames and classifies them:
//
//  1. A frame not addressed to the controller is the echo of our own
//     transmission (the CI-V bus is a party line) and is skipped.
//  2. An OK, NG, or a frame matching the command byte we sent is the
//     reply.
//  3. Anything else is an unsolicited transceive notification (the
//     radio reports front-panel changes spontaneously) and is skipped.
//
// The echo check runs before the unsolicited check; otherwise a
// command's own echo, which necessarily carries the expected command
// byte, would be handed back as its answer.
//
// The package also provides port discovery by USB product string and
// automatic bit-rate detection, so a Radio can usually be constructed
// with just AutoConnect.
//
// A Radio is not safe for concurrent use. Run it from a single
// goroutine, normally the poller.
package radio
