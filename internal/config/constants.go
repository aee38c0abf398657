package config

// IgnoredNamePrefix marks a binding as intentionally unused. A name starting
// with it can be bound but never referenced.
const IgnoredNamePrefix = "_"

// SizeTypeName is the primitive type of every named array size.
const SizeTypeName = "i64"

// Second-order array combinators recognized syntactically by the
// monomorphizer when applied through the generic apply node.
const (
	MapFuncName        = "map"
	FilterFuncName     = "filter"
	ReduceFuncName     = "reduce"
	ReduceCommFuncName = "reduce_comm"
	ScanFuncName       = "scan"
	PartitionFuncName  = "partition"
	StreamMapFuncName  = "stream_map"
	StreamRedFuncName  = "stream_red"
)
