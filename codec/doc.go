// Package codec implements the symmetric obfuscation applied to every
// session value before it enters persistent client storage.
//
// The transform is reversible for arbitrary UTF-8 text, including non-ASCII
// names and emails. It is obfuscation only; confidentiality is explicitly
// out of scope (the key ships with the client).
package codec
