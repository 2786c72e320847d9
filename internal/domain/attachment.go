package domain

import "strings"

// PrivateKeySentinel is returned by ResolveAttachmentURL for private
// object-storage keys. Callers must not navigate to it; they exchange
// the key for a time-limited signed URL instead.
const PrivateKeySentinel = "#"

// DefaultAvatarURL is the placeholder used when a profile image
// reference is missing.
const DefaultAvatarURL = "https://ui-avatars.com/api/?background=E2E8F0&color=64748B"

// privateKeyPrefixes is the allow-list of storage key prefixes that are
// always private regardless of shape.
var privateKeyPrefixes = []string{
	"proposals/",
	"disputes/",
	"milestones/",
	"deliverables/",
	"profiles/",
}

// ResolveAttachmentURL maps a stored reference to something the caller
// can act on: an absolute URL is returned unchanged, a legacy local
// path is anchored to apiBase, and a private storage key resolves to
// PrivateKeySentinel. Empty input resolves to "".
func ResolveAttachmentURL(apiBase, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}

	base := strings.TrimSuffix(apiBase, "/")
	if strings.HasPrefix(ref, "/") {
		return base + ref
	}
	if strings.HasPrefix(ref, "uploads/") {
		return base + "/" + ref
	}

	for _, prefix := range privateKeyPrefixes {
		if strings.HasPrefix(ref, prefix) {
			return PrivateKeySentinel
		}
	}

	// Heuristic for keys outside the allow-list: no scheme, no leading
	// slash, and not already anchored to the API base.
	if !strings.Contains(ref, "://") && (base == "" || !strings.Contains(ref, base)) {
		return PrivateKeySentinel
	}
	return ref
}

// ResolveProfileImageURL is the profile-image variant: missing
// references fall back to a placeholder avatar instead of "".
func ResolveProfileImageURL(apiBase, ref string) string {
	resolved := ResolveAttachmentURL(apiBase, ref)
	if resolved == "" {
		return DefaultAvatarURL
	}
	return resolved
}
