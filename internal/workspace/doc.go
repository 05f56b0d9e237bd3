// Package workspace locates the directory that relative paths in the
// configuration are resolved against.
//
// Inside a git checkout this is the work-tree root, so the tool behaves the
// same from any subdirectory. Outside one it is the starting directory.
package workspace
