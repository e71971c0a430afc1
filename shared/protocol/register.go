package protocol

import (
	"fmt"

	"github.com/automoto/yeetables/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetTransform uint = 10
	SyncIDNetEntity    uint = 11
	SyncIDNetDisplay   uint = 12
	SyncIDNetFeedback  uint = 13
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetTransform uint8 = 10
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDNetTransform,
		netcomponents.NetTransformData{},
		netcomponents.NetTransform,
		esync.WithInterpFn(InterpIDNetTransform, netcomponents.LerpNetTransform),
	); err != nil {
		return fmt.Errorf("register transform: %w", err)
	}

	// Discrete state: no interpolation
	if err := esync.RegisterComponent(
		SyncIDNetEntity,
		netcomponents.NetEntityData{},
		netcomponents.NetEntity,
	); err != nil {
		return fmt.Errorf("register entity: %w", err)
	}

	// Matrices are not lerped element-wise; clients slerp if they care.
	if err := esync.RegisterComponent(
		SyncIDNetDisplay,
		netcomponents.NetDisplayData{},
		netcomponents.NetDisplay,
	); err != nil {
		return fmt.Errorf("register display: %w", err)
	}

	if err := esync.RegisterComponent(
		SyncIDNetFeedback,
		netcomponents.NetFeedbackData{},
		netcomponents.NetFeedback,
	); err != nil {
		return fmt.Errorf("register feedback: %w", err)
	}

	return nil
}
