// Package encryption provides authenticated encryption of whole buffers with
// AES-256-GCM (through tink) or ChaCha20-Poly1305.
// Every Encrypt call draws a fresh nonce and salt; a nonce is never reused
// under the same key, since reuse breaks the confidentiality of both messages.
package encryption
