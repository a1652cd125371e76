// Copyright 2017 Cameron Bergoon
// https://github.com/cbergoon/merkletree
// Licensed under the MIT License, see LICENCE file for details.
// This code has been cleaned up, refactored, and turned into generics.

// Package merkle provides the binary hash tree that commits a block to its
// transactions. The tree shape and hash function are consensus rules: the
// hash is SHA-256, a single leaf is its own root, and an odd node count at
// any level duplicates the last node. Changing any of these breaks
// interoperability with prior blocks.
package merkle

import (
	"errors"
	"fmt"

	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/digest"
)

// Hashable represents the behavior concrete data must exhibit to be used
// in the merkle tree.
type Hashable[T any] interface {
	Hash() digest.Digest
	Equals(other T) bool
}

// =============================================================================

// Root reduces the specified values to their merkle root. The second
// return is false when there are no values: an empty set has no root,
// which is an absent result rather than an error or a zero digest.
func Root[T Hashable[T]](values []T) (digest.Digest, bool) {
	if len(values) == 0 {
		return digest.Digest{}, false
	}

	tree, err := NewTree(values)
	if err != nil {
		return digest.Digest{}, false
	}

	return tree.MerkleRoot, true
}

// =============================================================================

// Tree represents a merkle tree that uses data of some type T that
// exhibits the behavior defined by the Hashable constraint.
type Tree[T Hashable[T]] struct {
	Root       *Node[T]
	Leafs      []*Node[T]
	MerkleRoot digest.Digest
}

// NewTree constructs a merkle tree from the specified values.
func NewTree[T Hashable[T]](values []T) (*Tree[T], error) {
	var t Tree[T]
	if err := t.Generate(values); err != nil {
		return nil, err
	}

	return &t, nil
}

// Generate constructs the leafs and nodes of the tree from the specified
// data. If the tree has been generated previously, the tree is
// re-generated from scratch.
func (t *Tree[T]) Generate(values []T) error {
	if len(values) == 0 {
		return errors.New("cannot construct tree with no content")
	}

	var leafs []*Node[T]
	for _, value := range values {
		leafs = append(leafs, &Node[T]{
			Hash:  value.Hash(),
			Value: value,
			leaf:  true,
		})
	}

	// A lone leaf is its own root. Otherwise an odd count duplicates the
	// last leaf so every node has a sibling.
	if len(leafs) == 1 {
		t.Root = leafs[0]
		t.Leafs = leafs
		t.MerkleRoot = leafs[0].Hash

		return nil
	}

	if len(leafs)%2 == 1 {
		duplicate := &Node[T]{
			Hash:  leafs[len(leafs)-1].Hash,
			Value: leafs[len(leafs)-1].Value,
			leaf:  true,
			dup:   true,
		}
		leafs = append(leafs, duplicate)
	}

	t.Root = buildIntermediate(leafs)
	t.Leafs = leafs
	t.MerkleRoot = t.Root.Hash

	return nil
}

// Rebuild reconstructs the tree reusing only the data it currently holds
// in its leaves.
func (t *Tree[T]) Rebuild() error {
	var data []T
	for _, node := range t.Leafs {
		if node.dup {
			continue
		}
		data = append(data, node.Value)
	}

	return t.Generate(data)
}

// Proof returns the set of sibling hashes and the order of concatenating
// them for proving a value is in the tree. Order 0 means the proof hash
// concatenates first, order 1 second. Feed the result to VerifyProof.
func (t *Tree[T]) Proof(value T) ([]digest.Digest, []int64, error) {
	for _, node := range t.Leafs {
		if !node.Value.Equals(value) {
			continue
		}

		var proof []digest.Digest
		var order []int64

		for parent := node.Parent; parent != nil; parent = node.Parent {
			if parent.Left.Hash.Equal(node.Hash) {
				proof = append(proof, parent.Right.Hash)
				order = append(order, 1)
			} else {
				proof = append(proof, parent.Left.Hash)
				order = append(order, 0)
			}
			node = parent
		}

		return proof, order, nil
	}

	return nil, nil, errors.New("unable to find data in tree")
}

// VerifyProof replays a proof produced by Proof against a leaf hash and
// reports whether it reduces to the specified root.
func VerifyProof(leaf digest.Digest, proof []digest.Digest, order []int64, root digest.Digest) bool {
	if len(proof) != len(order) {
		return false
	}

	current := leaf
	for i, sibling := range proof {
		switch order[i] {
		case 0:
			current = combine(sibling, current)
		case 1:
			current = combine(current, sibling)
		default:
			return false
		}
	}

	return current.Equal(root)
}

// Verify recomputes the hashes at each level of the tree and reports
// whether the stored root still matches its leaves.
func (t *Tree[T]) Verify() error {
	calculated := t.Root.verify()
	if !t.MerkleRoot.Equal(calculated) {
		return errors.New("root hash invalid")
	}

	return nil
}

// Values returns the unique values stored in the tree, without the
// duplicate leaf an odd count introduces.
func (t *Tree[T]) Values() []T {
	var values []T
	for _, node := range t.Leafs {
		if node.dup {
			continue
		}
		values = append(values, node.Value)
	}

	return values
}

// String returns a string representation of the tree. Only leaf nodes are
// included in the output.
func (t *Tree[T]) String() string {
	s := ""
	for _, l := range t.Leafs {
		s += fmt.Sprintf("%s\n", l.Hash)
	}

	return s
}

// =============================================================================

// Node represents a node, root, or leaf in the tree. It stores pointers
// to its immediate relationships, a hash, and the data if it is a leaf.
type Node[T Hashable[T]] struct {
	Parent *Node[T]
	Left   *Node[T]
	Right  *Node[T]
	Hash   digest.Digest
	Value  T
	leaf   bool
	dup    bool
}

// verify walks down the tree until hitting a leaf, recalculating the hash
// at each level.
func (n *Node[T]) verify() digest.Digest {
	if n.leaf {
		return n.Value.Hash()
	}

	return combine(n.Left.verify(), n.Right.verify())
}

// =============================================================================

// buildIntermediate constructs the intermediate and root levels of the
// tree above the given leaf nodes and returns the root node.
func buildIntermediate[T Hashable[T]](nl []*Node[T]) *Node[T] {
	var nodes []*Node[T]

	for i := 0; i < len(nl); i += 2 {
		left, right := i, i+1
		if i+1 == len(nl) {
			right = i
		}

		n := Node[T]{
			Left:  nl[left],
			Right: nl[right],
			Hash:  combine(nl[left].Hash, nl[right].Hash),
		}
		nodes = append(nodes, &n)

		nl[left].Parent = &n
		nl[right].Parent = &n

		if len(nl) == 2 {
			return &n
		}
	}

	return buildIntermediate(nodes)
}

// combine hashes the concatenation of two child hashes, left first.
func combine(left digest.Digest, right digest.Digest) digest.Digest {
	buf := make([]byte, 0, 2*digest.Size)
	buf = left.AppendBytes(buf)
	buf = right.AppendBytes(buf)

	return digest.Hash(buf)
}
