package sharepage

// Reveal writes text into slot and makes it visible. Calling it again overwrites the text.
func Reveal(text string, slot Slot) {
	slot.SetText(text)
	slot.Show()
}
