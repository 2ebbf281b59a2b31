package board

// CheckInvariants exposes checkInvariants to the external test package.
func (b *Board) CheckInvariants() bool {
	return b.checkInvariants()
}
