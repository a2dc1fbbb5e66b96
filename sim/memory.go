package sim

// MemoryCapacity is the size of the addressable memory.
const MemoryCapacity = 0x10000

// Memory defines the system's memory bank.
// Words are stored little-endian and addresses wrap at MemoryCapacity.
type Memory []byte

// Word returns the 16-bit value at the given address.
func (m Memory) Word(addr int) int16 {
	lo := uint16(m[addr&0xffff])
	hi := uint16(m[(addr+1)&0xffff])
	return int16(hi<<8 | lo)
}

// SetWord sets the 16-bit value at the given address.
func (m Memory) SetWord(addr int, value int16) {
	m[addr&0xffff] = byte(value)
	m[(addr+1)&0xffff] = byte(uint16(value) >> 8)
}
