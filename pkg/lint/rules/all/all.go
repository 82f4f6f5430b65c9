// Package all registers every built-in lint rule family.
// Import it for its side effects to populate the global registry.
package all

import (
	// Blank imports trigger init() functions that register rules with the global registry.
	_ "github.com/aretw0/bindery/pkg/lint/rules/frontmatter" // registers FM* rules
	_ "github.com/aretw0/bindery/pkg/lint/rules/refs"        // registers RF* rules
	_ "github.com/aretw0/bindery/pkg/lint/rules/structure"   // registers ST* rules
)
