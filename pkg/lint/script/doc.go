// Package script loads lint rules written in Starlark.
//
// Each *.star file in the scripts directory defines one rule through its
// globals:
//
//	id = "no-todo"                  # optional, defaults to the file name
//	description = "No TODO comments"
//	severity = "warning"            # optional: "error" or "warning"
//	tokens = ["COMMENT"]            # token type names the rule listens to
//
//	def check(tokens, index, options):
//	    if "TODO" in tokens[index].text:
//	        return ["TODO comment found"]
//	    return []
//
// tokens is an indexable view of the file's tokens; each element has the
// fields type, text, line, column and offset. check returns a list of
// messages reported at the current token, or dicts {"message": ..., "at": i}
// to report at token i.
//
// Globals are frozen after loading. Each call runs on a fresh thread with a
// step budget, so a script can neither share state between files nor run
// forever.
package script
