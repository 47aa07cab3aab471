// Package twfold extracts utility-class strings from markup and component
// source files, folds each distinct combination into a short deterministic
// name, rewrites the occurrences in place and emits one stylesheet mapping
// the short names back to the original combinations via @apply rules.
//
// # Usage
//
//	config := twfold.Config{
//		Paths:  []string{"web/**/*.html", "web/**/*.tsx"},
//		Output: "web/styles/twfold.gen.css",
//		Mode:   "hash",
//		Prefix: "tw-",
//	}
//	result, err := twfold.Run(config)
//
// Static attribute values like class="flex items-center p-4" are replaced
// with a generated short name (class="tw-9f2c41") and the stylesheet gains
// a matching rule:
//
//	.tw-9f2c41 { @apply flex items-center p-4; }
//
// Dynamic expressions (className={cond ? "a" : "b"}) are detected, skipped
// and reported; they are never rewritten.
//
// # CLI Tool
//
// twfold also ships a CLI. Install with:
//
//	go install github.com/yacobolo/twfold/cmd/twfold@latest
package twfold
