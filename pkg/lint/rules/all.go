package rules

// Import all rule subpackages to register them with the global registry.
// This file triggers all init() functions in the rule packages.
import (
	// Import rule categories - each registers its rules via init()
	_ "github.com/leapstack-labs/phpstyle/pkg/lint/rules/comments"
	_ "github.com/leapstack-labs/phpstyle/pkg/lint/rules/files"
	_ "github.com/leapstack-labs/phpstyle/pkg/lint/rules/functions"
	_ "github.com/leapstack-labs/phpstyle/pkg/lint/rules/keywords"
	_ "github.com/leapstack-labs/phpstyle/pkg/lint/rules/naming"
	_ "github.com/leapstack-labs/phpstyle/pkg/lint/rules/spacing"
	_ "github.com/leapstack-labs/phpstyle/pkg/lint/rules/whitespace"
)
