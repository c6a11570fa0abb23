package inventory

import "github.com/voxelgate/client/pkg/wire"

const (
	ModuleName = "inventory"

	// InventorySlots is the player main-inventory mirror size.
	InventorySlots = 27
	// HotbarSlots is the hotbar mirror size.
	HotbarSlots = 9
	// PlayerSlots is the combined player-side range used by click requests
	// (inventory followed by hotbar).
	PlayerSlots = InventorySlots + HotbarSlots
)

// playerWireIndex maps a (collection, 0-based index) pair to the 1-based
// combined player-side wire index used by ContainerSlotClick.
func playerWireIndex(kind wire.SourceKind, index int) int {
	if kind == wire.SourceHotbar {
		return InventorySlots + index + 1
	}
	return index + 1
}
