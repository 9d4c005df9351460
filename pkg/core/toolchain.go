package core

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Toolchain holds the locations of the external programs the CLI shells out
// to. It is resolved once at startup so deeper code never reads the
// environment directly.
type Toolchain struct {
	// CompilerBin is the compactc binary. When COMPACT_HOME is set the
	// binary is expected at $COMPACT_HOME/compactc, otherwise the bare
	// name is left for PATH lookup.
	CompilerBin string

	// DockerBin is the container runtime CLI
	DockerBin string

	// PackageManagerBin runs dependency installation and tests
	PackageManagerBin string

	// ProofServerImage is the container image for the proving service
	ProofServerImage string

	// ContainerName is the fixed name of the proof-server container
	ContainerName string
}

// LoadToolchain resolves the toolchain from the environment, loading a .env
// file first when one is present.
func LoadToolchain() *Toolchain {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	compiler := "compactc"
	if home := os.Getenv("COMPACT_HOME"); home != "" {
		compiler = filepath.Join(home, "compactc")
	}

	return &Toolchain{
		CompilerBin:       compiler,
		DockerBin:         getEnv("MIDNIGHT_DOCKER_BIN", "docker"),
		PackageManagerBin: getEnv("MIDNIGHT_NPM_BIN", "npm"),
		ProofServerImage:  getEnv("MIDNIGHT_PROOF_SERVER_IMAGE", "midnightnetwork/proof-server:latest"),
		ContainerName:     getEnv("MIDNIGHT_PROOF_SERVER_NAME", "midnight-proof-server"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
