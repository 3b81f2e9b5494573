// Package scaffold copies registry components and themes into a project.
//
// Files of a component land in <components_dir>/<name>/, files of a theme in
// <themes_dir>/<name>/. Existing files are left untouched unless the
// installer runs with Force. In JavaScript projects .ts/.tsx files are
// written as .js/.jsx.
//
// npm dependencies collected from the installed items are installed in a
// separate step with the detected package manager:
//
//	bun.lockb, bun.lock  -> bun add
//	pnpm-lock.yaml       -> pnpm add
//	yarn.lock            -> yarn add
//	otherwise            -> npm install
package scaffold
