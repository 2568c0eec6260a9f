// Package node contains the node definition of a workflow document.
package node
