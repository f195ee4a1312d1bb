package configkeys

const (
	delimiter = "."

	ConfigPrefix = "config"

	ConfigSolverPrefix = ConfigPrefix + delimiter + "solver"

	ConfigSolverAlgorithm         = ConfigSolverPrefix + delimiter + "algorithm"
	ConfigSolverWorkers           = ConfigSolverPrefix + delimiter + "workers"
	ConfigSolverMaxRecursionDepth = ConfigSolverPrefix + delimiter + "max_recursion_depth"
	ConfigSolverDedup             = ConfigSolverPrefix + delimiter + "dedup"
	ConfigSolverMaxEnumeration    = ConfigSolverPrefix + delimiter + "max_enumeration"

	ConfigSolverMemoPrefix  = ConfigSolverPrefix + delimiter + "memo"
	ConfigSolverMemoSize    = ConfigSolverMemoPrefix + delimiter + "size"
	ConfigSolverMemoShards  = ConfigSolverMemoPrefix + delimiter + "shards"
	ConfigSolverMemoBackend = ConfigSolverMemoPrefix + delimiter + "backend"

	ConfigLogPrefix = ConfigPrefix + delimiter + "log"
	ConfigLogLevel  = ConfigLogPrefix + delimiter + "level"
)
