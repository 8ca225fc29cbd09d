// Package render draws a heap as a tree of box-drawing characters.
//
// Each row shows the item's array index, the tree structure leading to it
// and its name. Rows are emitted in pre-order, so an item's subtree follows
// it directly:
//
//	0 ╚╦ship
//	1  ╠╦review
//	3  ║╚═email
//	2  ╚═lunch
//
// ╦ marks an item with children and ═ a leaf. ╠ and ╚ connect an item to
// its parent, ╚ being used for the last child. ║ continues a branch past a
// sibling's subtree.
package render
