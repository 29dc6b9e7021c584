// Package oracle provides [expand.Oracle] implementations.
//
// A [Registry] resolves invocations from a table of named definitions, each
// an ordered list of rewrite rules loaded from YAML:
//
//	definitions:
//	  a_to_end:
//	    rules:
//	      - match: '"a" $body'
//	        expand: '$body'
//	  pick:
//	    rules:
//	      - match: '$first, $rest*'
//	        when: 'argc > 1 && values.first != ""'
//	        expand: '$first'
//
// In a match pattern, $name captures one token tree and $name* captures every
// remaining token. Other tokens must match exactly; groups match groups with
// the same delimiter. A capture name that appears twice must capture equal
// tokens both times. The optional when guard is an expr-lang boolean
// expression. The first rule that matches and whose guard holds is expanded,
// with each $name in the template replaced by its capture.
//
// [Builtins] implements a few fixed invocations: concat, stringify, env, and
// count. [Chain] consults several oracles in turn, and [Recorder] writes each
// call to a journal.
package oracle
