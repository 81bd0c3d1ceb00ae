// Package transfer models inter-site livestock transfers together with their
// paired reception, which reconciles what actually arrived at the destination.
// The reception is owned exclusively by its transfer and shares its lifecycle.
package transfer
