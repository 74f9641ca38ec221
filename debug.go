// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

//go:build debug

package ddd

// _DEBUG turns invariant violations in the algebra (for instance, combining
// two nodes labelled with different variables) into panics.
const _DEBUG bool = true
