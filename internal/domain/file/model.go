package file

import "time"

// Mode tags how a file's content is protected. The two modes coexist;
// every row carries exactly one.
type Mode string

const (
	// ModeDerived: the server derived an AES key from the uploader's
	// password and encrypted the blob itself. The derived key is retained
	// on the row (key escrow for the admin override) together with the
	// salt needed to re-derive it from the password.
	ModeDerived Mode = "derived"
	// ModeOpaque: the client encrypted before upload. The server stores
	// the ciphertext verbatim plus the client-supplied nonce and salt, and
	// never holds the key.
	ModeOpaque Mode = "opaque"
)

// File metadata. Encryption fields are immutable after creation.
type File struct {
	ID         int
	Name       string
	StorageKey string
	OwnerID    int
	Mode       Mode
	Salt       []byte
	Nonce      []byte // opaque mode: client-supplied nonce, echoed on download
	KeyData    []byte // derived mode: escrowed derived key
	CreatedAt  time.Time
}
