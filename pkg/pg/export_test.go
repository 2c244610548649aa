package pg

// ApplyPoolConfig exposes applyPoolConfig to the black-box tests.
var ApplyPoolConfig = applyPoolConfig
