// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/storage"
	"github.com/ava-labs/ammvm/utils"
)

var (
	ErrInputEmpty    = errors.New("input is empty")
	ErrInvalidChoice = errors.New("invalid choice")
	ErrExceedsMax    = errors.New("input exceeds maximum")
)

// Address prompts for a hex encoded address.
func Address(label string) (codec.Address, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := parseAddress(input)
			return err
		},
	}
	raw, err := promptText.Run()
	if err != nil {
		return codec.EmptyAddress, err
	}
	return parseAddress(raw)
}

// Asset prompts for an asset given either by symbol or by hex address.
func Asset(label string) (codec.Address, error) {
	promptText := promptui.Prompt{
		Label: label + " (symbol or address)",
		Validate: func(input string) error {
			_, err := parseAsset(input)
			return err
		},
	}
	raw, err := promptText.Run()
	if err != nil {
		return codec.EmptyAddress, err
	}
	return parseAsset(raw)
}

// Amount prompts for a decimal amount of an asset with [decimals] places
// and returns it in base units. Amounts above [maxValue] are rejected.
func Amount(label string, decimals uint8, maxValue uint64) (uint64, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := parseAmount(input, decimals, maxValue)
			return err
		},
	}
	raw, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	return parseAmount(raw, decimals, maxValue)
}

// Uint64 prompts for a base-10 integer no greater than [maxValue].
func Uint64(label string, maxValue uint64) (uint64, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := parseUint64(input, maxValue)
			return err
		},
	}
	raw, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	return parseUint64(raw, maxValue)
}

func Bool(label string) (bool, error) {
	promptText := promptui.Prompt{
		Label: label + " (y/n)",
		Validate: func(input string) error {
			_, err := parseBool(input)
			return err
		},
	}
	raw, err := promptText.Run()
	if err != nil {
		return false, err
	}
	return parseBool(raw)
}

// Continue asks for confirmation unless [yes] is already set.
func Continue(yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	cont, err := Bool("continue")
	if err != nil {
		return false, err
	}
	if !cont {
		utils.Outf("{{red}}exiting...{{/}}\n")
	}
	return cont, nil
}

func parseAddress(input string) (codec.Address, error) {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return codec.EmptyAddress, ErrInputEmpty
	}
	return codec.ParseAddress(input)
}

func parseAsset(input string) (codec.Address, error) {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return codec.EmptyAddress, ErrInputEmpty
	}
	if strings.HasPrefix(input, "0x") {
		return codec.ParseAddress(input)
	}
	return storage.AssetAddress(input), nil
}

func parseAmount(input string, decimals uint8, maxValue uint64) (uint64, error) {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return 0, ErrInputEmpty
	}
	amount, err := utils.ParseAmount(input, decimals)
	if err != nil {
		return 0, err
	}
	if amount > maxValue {
		return 0, fmt.Errorf("%w: %s > %s", ErrExceedsMax, input, utils.FormatAmount(maxValue, decimals))
	}
	return amount, nil
}

func parseUint64(input string, maxValue uint64) (uint64, error) {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return 0, ErrInputEmpty
	}
	v, err := strconv.ParseUint(input, 10, 64)
	if err != nil {
		return 0, err
	}
	if v > maxValue {
		return 0, fmt.Errorf("%w: %d > %d", ErrExceedsMax, v, maxValue)
	}
	return v, nil
}

func parseBool(input string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		return false, ErrInputEmpty
	case "y":
		return true, nil
	case "n":
		return false, nil
	default:
		return false, ErrInvalidChoice
	}
}
