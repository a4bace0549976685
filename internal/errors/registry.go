package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (C001-C099)
	// ============================================

	"C001": {
		Category: CategoryConfig,
		Message:  "Route table has no root route",
		Detail:   "The route table must contain a definition keyed by \"/\". The root route is always matched as the outermost layout.",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "Route table key does not match definition path",
		Detail:   "Each route table key must equal the Path of the definition stored under it.",
	},
	"C003": {
		Category: CategoryConfig,
		Message:  "Malformed component slots",
		Detail:   "A route definition carries exactly four component slots (layout error boundary, layout, page error boundary, page) and the page slot must not be empty.",
	},
	"C004": {
		Category: CategoryConfig,
		Message:  "Non-root builder without parent",
		Detail:   "A builder created without a parent definition must use the path segment \"/\".",
	},
	"C005": {
		Category: CategoryConfig,
		Message:  "Path segment contains a slash",
		Detail:   "Each builder call covers one path segment. Express nesting by chaining builders, not by multi-segment paths.",
	},
	"C006": {
		Category: CategoryConfig,
		Message:  "Conflicting dynamic segment",
		Detail:   "Only one dynamic pattern may occupy a given trie position. Registering a second dynamic route with a different parameter at the same position is rejected.",
	},
	"C007": {
		Category: CategoryConfig,
		Message:  "Error boundary slot must not be lazy",
		Detail:   "Error boundary slots are rendered when other slots fail and therefore must be concrete values or empty, never lazily loaded.",
	},
	"C008": {
		Category: CategoryConfig,
		Message:  "Misplaced \":\" in path segment",
		Detail:   "A \":\" marks a dynamic segment and may only appear as the first character of a segment.",
	},

	// ============================================
	// Match Errors (M001-M099)
	// ============================================

	"M001": {
		Category: CategoryMatch,
		Message:  "No route matches path",
		Detail:   "Trie lookup found no terminal node for the pathname. The navigation attempt is abandoned without touching the current route.",
	},
	"M002": {
		Category: CategoryMatch,
		Message:  "Unknown route path in navigation target",
		Detail:   "A structured navigation target must name a path that is a key of the route table.",
	},

	// ============================================
	// Navigation Errors (N001-N099)
	// ============================================

	"N001": {
		Category: CategoryNavigation,
		Message:  "Route parameter parsing failed",
	},
	"N002": {
		Category: CategoryNavigation,
		Message:  "Search query parsing failed",
	},
	"N003": {
		Category: CategoryNavigation,
		Message:  "Load hook failed",
	},
	"N004": {
		Category: CategoryNavigation,
		Message:  "Component resolution failed",
		Detail:   "A lazy component loader returned an error. The failure is attributed to the level owning the slot.",
	},
	"N005": {
		Category: CategoryNavigation,
		Message:  "Hook failed",
	},

	// ============================================
	// Internal Errors (I001-I099)
	// ============================================

	"I001": {
		Category: CategoryInternal,
		Message:  "Redirect chain exceeded limit",
		Detail:   "A chain of redirects exceeded the configured maximum. This usually indicates a redirect loop between hooks.",
	},
	"I002": {
		Category: CategoryInternal,
		Message:  "Invalid navigation target",
		Detail:   "A navigation target must be an href string or a Target value.",
	},
}
