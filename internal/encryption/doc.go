// Package encryption implements hybrid encryption of grayscale image buffers.
// A fresh AES-128 key encrypts the raster under one of five selectable modes
// (ECB, CBC, CTR, CFB, OCB), the key is wrapped with RSA-OAEP for the
// recipient, and the result is framed as a self-describing binary container.
// The wrapped key is a sibling artifact, never embedded in the container.
package encryption
