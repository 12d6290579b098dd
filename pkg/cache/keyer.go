package cache

// Keyer produces cache keys for the stored artifact types.
type Keyer interface {
	// ArrangementKey returns the key of a built arrangement.
	ArrangementKey(sceneHash string, opts ArrangementKeyOpts) string

	// IntersectionsKey returns the key of a segment intersection result.
	IntersectionsKey(sceneHash string) string

	// RenderKey returns the key of a rendered artifact.
	RenderKey(arrangementHash string, format string) string
}

// Key namespaces of [DefaultKeyer].
const (
	NamespaceArrangement   = "arrangement"
	NamespaceIntersections = "intersections"
	NamespaceRender        = "render"
)

// Namespaces lists the key namespaces of [DefaultKeyer].
var Namespaces = []string{NamespaceArrangement, NamespaceIntersections, NamespaceRender}

// ArrangementKeyOpts holds the build options that change an arrangement.
type ArrangementKeyOpts struct {
	Validate bool `json:"validate"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) ArrangementKey(sceneHash string, opts ArrangementKeyOpts) string {
	return hashKey(NamespaceArrangement, sceneHash, opts)
}

func (DefaultKeyer) IntersectionsKey(sceneHash string) string {
	return hashKey(NamespaceIntersections, sceneHash)
}

func (DefaultKeyer) RenderKey(arrangementHash string, format string) string {
	return hashKey(NamespaceRender, arrangementHash, format)
}

var _ Keyer = DefaultKeyer{}
