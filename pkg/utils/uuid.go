package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const defaultIDSize = 12

// GenerateID gera um identificador curto para relatórios
func GenerateID() string {
	return gonanoid.MustGenerate(characters, defaultIDSize)
}
