package model

// ScopeKind classifies a scope. Only modules exist today.
type ScopeKind string

// ScopeModule is a module instance.
const ScopeModule ScopeKind = "module"

// ScopeDefinition describes where a scope is declared.
type ScopeDefinition struct {
	Src        *string    `json:"src"`
	Name       *string    `json:"name"`
	Attributes Attributes `json:"attributes"`
}

// ScopeInstantiation describes where a scope is instantiated.
type ScopeInstantiation struct {
	Src        *string    `json:"src"`
	Attributes Attributes `json:"attributes"`
}

// Scope is a node in the design hierarchy.
type Scope struct {
	Kind          ScopeKind          `json:"type"`
	Definition    ScopeDefinition    `json:"definition"`
	Instantiation ScopeInstantiation `json:"instantiation"`
}

// Scopes maps scope paths to scopes.
type Scopes map[Path]Scope

// RootScope returns the anonymous top scope.
func RootScope() Scope {
	return Scope{
		Kind:          ScopeModule,
		Definition:    ScopeDefinition{Attributes: Attributes{}},
		Instantiation: ScopeInstantiation{Attributes: Attributes{}},
	}
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
