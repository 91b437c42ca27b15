// Package dag provides the directed code graph behind taxonomy validation
// and the structural queries run on it.
//
// # Overview
//
// A taxonomy's composition table lists parent/child code pairs. [Build]
// turns them into a [Graph], an owned adjacency structure with an outgoing
// list, a reverse (incoming) index and an edge set. The name reflects what a
// well-formed taxonomy must be; the Graph itself accepts cycles so they can be
// found and reported.
//
// # Structural Checks
//
//   - [DetectCycle] finds one directed cycle and returns it as an edge witness
//   - [Components] partitions the graph into weakly connected components
//   - [FindDisconnected] returns every component except the largest
//
// # Hierarchy Queries
//
//   - [ToTree] and [Subtree] extract a breadth-first spanning tree from a root
//   - [Leaves] lists codes with no children
//
// # Determinism
//
// Findings are compared as exact strings, so traversal order is part of the
// contract. [Graph.Nodes] is sorted with [code.Compare] and children are
// visited in edge insertion order. Identical input always produces identical
// cycles, components and trees.
//
// # Concurrency
//
// A Graph is not safe for concurrent mutation. Once built it is only read,
// and independent graphs can be checked in parallel without coordination.
//
// [code.Compare]: github.com/matzehuels/taxocheck/pkg/code.Compare
package dag
