package match

// Kind classifies why a record matched a keyword. Lower values rank first.
// Kinds only order results, they never filter them.
type Kind int

const (
	ExactRepo Kind = iota
	ExactFullName
	RepoSubstring
	PathSubstring
	ExactOwner
	OwnerSubstring
	RemoteSubstring
	FuzzySegment
)

func (k Kind) String() string {
	switch k {
	case ExactRepo:
		return "exact-repo"
	case ExactFullName:
		return "exact-fullname"
	case RepoSubstring:
		return "repo-substring"
	case PathSubstring:
		return "path-substring"
	case ExactOwner:
		return "exact-owner"
	case OwnerSubstring:
		return "owner-substring"
	case RemoteSubstring:
		return "remote-substring"
	case FuzzySegment:
		return "fuzzy-segment"
	default:
		return "unknown"
	}
}
