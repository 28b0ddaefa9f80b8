package session

// Storage key names are part of the persisted wire format and must not be
// renamed: values written by earlier clients live under these exact keys.
const (
	KeyToken         = "token"
	KeyRole          = "Role"
	KeyUserID        = "id_Usuario"
	KeyUserRef       = "user_id"
	KeyName          = "nombre"
	KeyEmail         = "correo"
	KeyTokenChecksum = "token_checksum"
	KeyDataChecksum  = "data_checksum"

	// KeySecurityBlock is written raw (not obfuscated) on forced logout.
	KeySecurityBlock = "security_block"
)

// SessionKeys enumerates every key the session owns, in write order.
// ClearSession removes exactly these.
var SessionKeys = []string{
	KeyToken,
	KeyRole,
	KeyUserID,
	KeyUserRef,
	KeyName,
	KeyEmail,
	KeyTokenChecksum,
	KeyDataChecksum,
	KeySecurityBlock,
}

// SensitiveKeys are the fields whose external mutation is a tamper signal.
var SensitiveKeys = []string{
	KeyToken,
	KeyRole,
	KeyName,
	KeyEmail,
	KeyUserID,
	KeyUserRef,
}

// Profile is the denormalized copy of the token payload persisted for access
// without repeated decoding. JSON tags fix the serialization order the data
// checksum is computed over; changing them invalidates every stored
// checksum in the field.
type Profile struct {
	Role    string `json:"Role"`
	UserID  string `json:"id_Usuario"`
	UserRef string `json:"user_id"`
	Name    string `json:"nombre"`
	Email   string `json:"correo"`
}

// Snapshot is a point-in-time read of the full persisted session.
type Snapshot struct {
	Token         string
	Profile       Profile
	TokenChecksum string
	DataChecksum  string
}
