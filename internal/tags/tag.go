package tags

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownTag = errors.New("unknown tag")

// Tag is one entry of the fixed tag vocabulary
type Tag int

const (
	Stack Tag = iota
	DynamicProgramming
	BinaryTree
	Graph
	BackTracking
	HashMap
	String
	Array
	Math
	Sorting
	Greedy
	DepthFirstSearch
	BinarySearch
	Database
	BreadthFirstSearch
	Tree
	Matrix
	TwoPointers
	BitManipulation
	Heap
	PrefixSum
	Simulation
	Design
	Counting
	SlidingWindow
	UnionFind
	LinkedList
	OrderedSet
	Enumeration
	MonotonicStack
	Trie
	Recursion
	DivideAndConquer
	NumberTheory
	Bitmask
	Queue
	BinarySearchTree
	Memoization
	SegmentTree
	Geometry
	TopologicalSort
	BinaryIndexedTree
	GameTheory
	HashFunction
	ShortestPath
	Combinatorics
	Interactive
	StringMatching
	DataStream
	RollingHash
	Brainteaser
	Randomized
	MonotonicQueue
	MergeSort
	Iterator
	Concurrency
	DoublyLinkedList
	ProbabilityAndStatistics
	QuickSelect
	BucketSort
	SuffixArray
	MinimumSpanningTree
	CountingSort
	Shell
	LineSweep
	ReservoirSampling
	StronglyConnectedComponent
	EulerianCircuit
	RadixSort
	RejectionSampling
	BiconnectedComponent
)

// each tag has a long name, written to TAGS files, and a short name for typing
var names = [...]struct{ long, short string }{
	Stack:                      {"Stack", "stack"},
	DynamicProgramming:         {"DynamicProgramming", "dp"},
	BinaryTree:                 {"BinaryTree", "btree"},
	Graph:                      {"Graph", "graph"},
	BackTracking:               {"BackTracking", "backtracking"},
	HashMap:                    {"HashMap", "hashmap"},
	String:                     {"String", "string"},
	Array:                      {"Array", "array"},
	Math:                       {"Math", "math"},
	Sorting:                    {"Sorting", "sorting"},
	Greedy:                     {"Greedy", "greedy"},
	DepthFirstSearch:           {"DepthFirstSearch", "dfs"},
	BinarySearch:               {"BinarySearch", "binarysearch"},
	Database:                   {"Database", "database"},
	BreadthFirstSearch:         {"BreadthFirstSearch", "bfs"},
	Tree:                       {"Tree", "tree"},
	Matrix:                     {"Matrix", "matrix"},
	TwoPointers:                {"TwoPointers", "twopointers"},
	BitManipulation:            {"BitManipulation", "bitmanip"},
	Heap:                       {"Heap", "heap"},
	PrefixSum:                  {"PrefixSum", "prefixsum"},
	Simulation:                 {"Simulation", "sim"},
	Design:                     {"Design", "design"},
	Counting:                   {"Counting", "counting"},
	SlidingWindow:              {"SlidingWindow", "slidingwindow"},
	UnionFind:                  {"UnionFind", "unionfind"},
	LinkedList:                 {"LinkedList", "ll"},
	OrderedSet:                 {"OrderedSet", "orderedset"},
	Enumeration:                {"Enumeration", "enum"},
	MonotonicStack:             {"MonotonicStack", "monotonicstack"},
	Trie:                       {"Trie", "trie"},
	Recursion:                  {"Recursion", "recursion"},
	DivideAndConquer:           {"DivideAndConquer", "divideandconquer"},
	NumberTheory:               {"NumberTheory", "numbertheory"},
	Bitmask:                    {"Bitmask", "bitmask"},
	Queue:                      {"Queue", "queue"},
	BinarySearchTree:           {"BinarySearchTree", "bst"},
	Memoization:                {"Memoization", "memo"},
	SegmentTree:                {"SegmentTree", "segmenttree"},
	Geometry:                   {"Geometry", "geometry"},
	TopologicalSort:            {"TopologicalSort", "topologicalsort"},
	BinaryIndexedTree:          {"BinaryIndexedTree", "binaryindexedtree"},
	GameTheory:                 {"GameTheory", "gametheory"},
	HashFunction:               {"HashFunction", "hashfunction"},
	ShortestPath:               {"ShortestPath", "shortestpath"},
	Combinatorics:              {"Combinatorics", "combinatorics"},
	Interactive:                {"Interactive", "interactive"},
	StringMatching:             {"StringMatching", "stringmatching"},
	DataStream:                 {"DataStream", "datastream"},
	RollingHash:                {"RollingHash", "rollinghash"},
	Brainteaser:                {"Brainteaser", "brainteaser"},
	Randomized:                 {"Randomized", "randomized"},
	MonotonicQueue:             {"MonotonicQueue", "monotonicqueue"},
	MergeSort:                  {"MergeSort", "mergesort"},
	Iterator:                   {"Iterator", "iterator"},
	Concurrency:                {"Concurrency", "concurrency"},
	DoublyLinkedList:           {"DoublyLinkedList", "2ll"},
	ProbabilityAndStatistics:   {"ProbabilityAndStatistics", "prob"},
	QuickSelect:                {"QuickSelect", "quickselect"},
	BucketSort:                 {"BucketSort", "bucketsort"},
	SuffixArray:                {"SuffixArray", "suffixarray"},
	MinimumSpanningTree:        {"MinimumSpanningTree", "minimumspanningtree"},
	CountingSort:               {"CountingSort", "countingsort"},
	Shell:                      {"Shell", "shell"},
	LineSweep:                  {"LineSweep", "linesweep"},
	ReservoirSampling:          {"ReservoirSampling", "reservoirsampling"},
	StronglyConnectedComponent: {"StronglyConnectedComponent", "stronglyconnectedcomponent"},
	EulerianCircuit:            {"EulerianCircuit", "euleriancircuit"},
	RadixSort:                  {"RadixSort", "radixsort"},
	RejectionSampling:          {"RejectionSampling", "rejectionsampling"},
	BiconnectedComponent:       {"BiconnectedComponent", "biconnectedcomponent"},
}

// LeetCode topic slugs that do not follow the long name
var topicAliases = map[string]Tag{
	"hash-table":          HashMap,
	"heap-priority-queue": Heap,
}

// All returns every tag in declaration order
func All() []Tag {
	out := make([]Tag, len(names))
	for i := range names {
		out[i] = Tag(i)
	}
	return out
}

func (t Tag) valid() bool {
	return t >= 0 && int(t) < len(names)
}

// String returns the long name, e.g. "DynamicProgramming"
func (t Tag) String() string {
	if !t.valid() {
		return fmt.Sprintf("Tag(%d)", int(t))
	}
	return names[t].long
}

// Short returns the short name, e.g. "dp"
func (t Tag) Short() string {
	if !t.valid() {
		return ""
	}
	return names[t].short
}

// Parse accepts a short or long name, ignoring ASCII case
func Parse(s string) (Tag, error) {
	s = strings.TrimSpace(s)
	for i, n := range names {
		if strings.EqualFold(s, n.short) || strings.EqualFold(s, n.long) {
			return Tag(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownTag)
}

// FromTopicSlug maps a LeetCode topic slug such as "dynamic-programming" to a tag
func FromTopicSlug(slug string) (Tag, bool) {
	if t, ok := topicAliases[slug]; ok {
		return t, true
	}
	joined := strings.ReplaceAll(slug, "-", "")
	for i, n := range names {
		if strings.EqualFold(joined, n.long) || strings.EqualFold(joined, n.short) {
			return Tag(i), true
		}
	}
	return 0, false
}

// FromTopicSlugs maps every known slug, dropping the rest
func FromTopicSlugs(slugs []string) []Tag {
	var out []Tag
	for _, s := range slugs {
		if t, ok := FromTopicSlug(s); ok {
			out = append(out, t)
		}
	}
	return out
}
