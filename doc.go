// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package ddd defines concrete types for Data Decision Diagrams (DDD) and Set
Decision Diagrams (SDD), data structures used to represent very large sets of
sequences of integer assignments, such as the reachable states of a system,
together with homomorphisms used to transform them.

Basics

All the objects are created by a Manager (using the function New), which owns
the unicity tables, the operation caches and the error status. Objects from
different managers cannot be mixed. A DDD is a reference to a node labelled by
a variable (an integer), with arcs labelled by values; we use three terminal
nodes: Null (the empty set), One (the set containing the empty sequence) and
Top (an error value). Nodes are canonical, which means that two DDD from the
same manager are equal, using ==, if and only if they denote the same set.

SDD are hierarchical versions of DDD where arcs are labelled by sets of values
(see the interface DataSet). The type IntSet provides finite sets of integers,
and both DDD and SDD can be used as labels, which makes it possible to nest
diagrams.

Homomorphisms

The types Hom and Shom are functions on DDD and SDD built from a small set of
combinators (Identity, Constant, Add, Compose, Fixpoint, ...) and from user
defined inductive homomorphisms (see StrongHom). Homomorphisms are canonical,
like nodes, and their evaluation is cached. MLHom and MLShom are multi-linear
homomorphisms, whose result is a map from homomorphisms to diagrams.

Errors

Operations on diagrams never return an error. When the operands are not
compatible, for instance when we compute the union of two nodes labelled with
different variables, the result is Top and the cause is recorded in the
manager; see methods Err and Errored. When compiled with the build tag `debug`,
the first error raises a panic instead.

Memory management

Objects are never reclaimed implicitly. A call to GC reclaims every node and
homomorphism that is not reachable from an external reference, created with
NewRef. References that are lost without being released are collected with
the help of the Go runtime, using finalizers. A Manager is not safe for
concurrent use.
*/
package ddd
