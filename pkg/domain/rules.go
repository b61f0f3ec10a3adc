package domain

import "context"

// RuleView provides read-only access to network records for rule evaluation.
type RuleView interface {
	ListSpecies() []Species
	FindSpecies(id string) (Species, bool)
	// TemplateIDs lists the ids of one template kind in insertion order.
	TemplateIDs(kind EntityType) []string
	HasTemplate(kind EntityType, id string) bool
	ParentReactions(kind EntityType, id string) []string
	FindComplex(id string) (ComplexFormation, bool)
	FindTranslation(id string) (Translation, bool)
	ListReactions() []ReactionRecord
	Globals() GlobalInfo
}

// Rule defines an evaluation executed against a network view.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context, view RuleView) (Result, error)
}

// RulesEngine orchestrates rule evaluation.
type RulesEngine struct {
	rules []Rule
}

// NewRulesEngine constructs an engine instance.
func NewRulesEngine() *RulesEngine {
	return &RulesEngine{}
}

// Register appends a rule to the engine.
func (e *RulesEngine) Register(rule Rule) {
	e.rules = append(e.rules, rule)
}

// Rules returns the registered rules in evaluation order.
func (e *RulesEngine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Evaluate executes all registered rules and aggregates their results.
func (e *RulesEngine) Evaluate(ctx context.Context, view RuleView) (Result, error) {
	var combined Result
	for _, rule := range e.rules {
		res, err := rule.Evaluate(ctx, view)
		if err != nil {
			return Result{}, err
		}
		combined.Merge(res)
	}
	return combined, nil
}
