package domain

import (
	"fmt"
	"net"
	"strconv"

	"github.com/google/uuid"
)

// TargetID identifies one monitored target. IDs are minted, never derived
// from target fields, so two targets with the same host/port stay distinct.
type TargetID string

func NewTargetID() TargetID {
	return TargetID(uuid.NewString())
}

// Target describes what to monitor. It is treated as immutable once a check
// loop runs against it; changing a target means remove + re-add.
type Target struct {
	Name     string   `json:"name" yaml:"name" validate:"required"`
	Host     string   `json:"host" yaml:"host" validate:"required"`
	Port     uint16   `json:"port,omitempty" yaml:"port,omitempty"`
	Protocol Protocol `json:"protocol" yaml:"protocol" validate:"required,oneof=ping tcp udp"`
	Enabled  bool     `json:"enabled" yaml:"enabled"`
}

func (t Target) Validate() error {
	if t.Host == "" {
		return fmt.Errorf("target %q: host is required", t.Name)
	}
	if _, err := ParseProtocol(string(t.Protocol)); err != nil {
		return fmt.Errorf("target %q: %w", t.Name, err)
	}
	return nil
}

// EffectivePort is the port a check actually probes: the configured one, or
// the protocol default when unset.
func (t Target) EffectivePort() uint16 {
	if t.Port != 0 {
		return t.Port
	}
	return t.Protocol.DefaultPort()
}

// Addr renders host plus the effective port ("8.8.8.8:53"), or just the host
// for ping targets.
func (t Target) Addr() string {
	port := t.EffectivePort()
	if port == 0 {
		return t.Host
	}
	return net.JoinHostPort(t.Host, strconv.Itoa(int(port)))
}
