package types

import (
	"fmt"
	"net"
	"strconv"
)

// Endpoint is a host:port pair of a cluster peer.
type Endpoint struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

func (e Endpoint) String() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// ParseEndpoint parses "host:port".
func ParseEndpoint(s string) (Endpoint, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return Endpoint{}, fmt.Errorf("parsing endpoint %q: %w", s, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return Endpoint{}, fmt.Errorf("parsing endpoint %q: invalid port %q", s, portStr)
	}
	return Endpoint{Host: host, Port: port}, nil
}

// NodeConfig is the AINode process configuration, built once at startup and
// passed by reference to collaborators.
type NodeConfig struct {
	Cluster    ClusterConfig    `yaml:"cluster" json:"cluster"`
	RPC        RPCConfig        `yaml:"rpc" json:"rpc"`
	Inference  InferenceConfig  `yaml:"inference" json:"inference"`
	Paths      PathsConfig      `yaml:"paths" json:"paths"`
	Log        LogConfig        `yaml:"log" json:"log"`
	ModelFiles ModelFilesConfig `yaml:"modelFiles" json:"modelFiles"`
	Server     ServerConfig     `yaml:"server" json:"server"`
}

// ClusterConfig locates the node within the database cluster.
type ClusterConfig struct {
	Name             string   `yaml:"name" json:"name"`
	TargetConfigNode Endpoint `yaml:"targetConfigNode" json:"targetConfigNode"`
	RPCAddress       string   `yaml:"rpcAddress" json:"rpcAddress"`
	RPCPort          int      `yaml:"rpcPort" json:"rpcPort"`
	IngressAddress   string   `yaml:"ingressAddress" json:"ingressAddress"`
	IngressPort      int      `yaml:"ingressPort" json:"ingressPort"`
	IngressUsername  string   `yaml:"ingressUsername" json:"ingressUsername"`
	IngressPassword  string   `yaml:"ingressPassword" json:"-"`
	IngressTimeZone  string   `yaml:"ingressTimeZone" json:"ingressTimeZone"`
}

// RPCConfig holds thrift client settings.
type RPCConfig struct {
	CompressionEnabled bool `yaml:"compressionEnabled" json:"compressionEnabled"`
	ReconnectTimeout   int  `yaml:"reconnectTimeout" json:"reconnectTimeout"` // seconds
	ReconnectTimes     int  `yaml:"reconnectTimes" json:"reconnectTimes"`
}

// InferenceConfig bounds inference requests.
type InferenceConfig struct {
	BatchIntervalMs  int `yaml:"batchIntervalMs" json:"batchIntervalMs"`
	MaxPredictLength int `yaml:"maxPredictLength" json:"maxPredictLength"`
}

// PathsConfig is the node's directory layout, relative to its root.
type PathsConfig struct {
	Models        string   `yaml:"models" json:"models"`
	BuiltinModels string   `yaml:"builtinModels" json:"builtinModels"`
	System        string   `yaml:"system" json:"system"`
	Log           string   `yaml:"log" json:"log"`
	FamilyDirs    []string `yaml:"familyDirs,omitempty" json:"familyDirs,omitempty"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level          string `yaml:"level" json:"level"`
	Format         string `yaml:"format" json:"format"` // "json" or "text"
	FileNamePrefix string `yaml:"fileNamePrefix" json:"fileNamePrefix"`
}

// ModelFilesConfig names the files of a stored model.
type ModelFilesConfig struct {
	WeightsFile       string `yaml:"weightsFile" json:"weightsFile"`
	ConfigFile        string `yaml:"configFile" json:"configFile"`
	DefaultModelFile  string `yaml:"defaultModelFile" json:"defaultModelFile"`
	DefaultConfigFile string `yaml:"defaultConfigFile" json:"defaultConfigFile"`
	ChunkSize         int    `yaml:"chunkSize" json:"chunkSize"`
}

// ServerConfig configures the HTTP capability surface.
type ServerConfig struct {
	Addr         string `yaml:"addr" json:"addr"`
	MaxBodyBytes int64  `yaml:"maxBodyBytes,omitempty" json:"maxBodyBytes,omitempty"`
}
