package core

// NewDefaultRulesEngine builds a rules engine with the built-in network checks.
func NewDefaultRulesEngine() *RulesEngine {
	engine := NewRulesEngine()
	engine.Register(NewReactionIntegrityRule())
	engine.Register(NewComplexModificationRule())
	engine.Register(NewTranslationStartRule())
	engine.Register(NewOrphanTemplateRule())
	return engine
}
