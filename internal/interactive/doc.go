// Package interactive implements the menu session started by running ignix
// without arguments.
//
// Each iteration asks for a menu choice, collects the extra answers the
// chosen action needs and hands an Invocation to a Runner:
//
//	init, themes, wizard  -> ignix <name>
//	add                   -> namespace, identifiers -> ignix add <namespace> <ids...>
//	list                  -> namespace              -> ignix list <namespace>
//	exit                  -> farewell, session ends
//
// An abandoned menu prompt ends the session like exit. An abandoned
// secondary prompt skips the action. Errors returned by the Runner are
// printed and the menu is shown again; a failing action never ends the
// session.
package interactive
