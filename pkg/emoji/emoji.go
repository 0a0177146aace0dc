package emoji

const (
	CheckMark   = "✔️"         // ✔️
	CrossMark   = "❌"          // ❌
	GreenCircle = "\U0001f7e2" // 🟢
	Prohibited  = "\U0001f6ab" // 🚫
	RedCircle   = "\U0001f534" // 🔴
	Warning     = "⚠️"         // ⚠️
	Sync        = "\U0001F504" // 🔄
)

// Bool renders a flag as a check mark or a cross.
func Bool(b bool) string {
	if b {
		return CheckMark
	}

	return CrossMark
}
