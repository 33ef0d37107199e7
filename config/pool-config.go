package config

// FixedPoolConfig is the demo geometry for the fixed-block-size pool:
// a 4 KB pool split into four 1 KB blocks.
type FixedPoolConfig struct {
	TotalSize uint64
	BlockSize uint64
}

func NewFixedPoolConfig() *FixedPoolConfig {
	return &FixedPoolConfig{
		TotalSize: 4096,
		BlockSize: 1024,
	}
}

// VariablePoolConfig is the demo geometry for the variable-block-size pool:
// 16 GB carved into 2 GB, 2 MB and 4 KB chunks, in that preference order.
type VariablePoolConfig struct {
	TotalSize  uint64
	BlockSizes []uint64
}

func NewVariablePoolConfig() *VariablePoolConfig {
	return &VariablePoolConfig{
		TotalSize:  17179869184,
		BlockSizes: []uint64{2147483648, 2097152, 4096},
	}
}
