package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"positionScope/internal/entity"
	"positionScope/internal/fraction"
	"positionScope/internal/tickmath"
)

// The tick command works on anonymous tokens; only decimals and ordering
// matter, so two fixed addresses stand in for the pair.
func placeholderPair(decimals0, decimals1 uint8) (entity.Token, entity.Token) {
	token0 := entity.NewToken(1, "0x0000000000000000000000000000000000000001", decimals0, "TOKEN0", "Token0")
	token1 := entity.NewToken(1, "0x0000000000000000000000000000000000000002", decimals1, "TOKEN1", "Token1")
	return token0, token1
}

func runTick(cmd *cobra.Command, _ []string) error {
	fee, _ := cmd.Flags().GetUint32("fee")
	decimals0, _ := cmd.Flags().GetUint8("token0-decimals")
	decimals1, _ := cmd.Flags().GetUint8("token1-decimals")
	invert, _ := cmd.Flags().GetBool("invert")
	significant, _ := cmd.Flags().GetInt("significant")

	feeAmount := tickmath.FeeAmount(fee)
	if !feeAmount.Valid() {
		return fmt.Errorf("unsupported fee tier %d", fee)
	}
	spacing := tickmath.TickSpacings[feeAmount]

	token0, token1 := placeholderPair(decimals0, decimals1)
	base, quote := token0, token1
	if invert {
		base, quote = token1, token0
	}

	if cmd.Flags().Changed("price") {
		value, _ := cmd.Flags().GetString("price")
		price, ok := entity.TryParsePrice(base, quote, value)
		if !ok {
			return fmt.Errorf("not a valid price: %q", value)
		}
		tick, err := entity.PriceToClosestTick(price)
		if err != nil {
			return err
		}
		usable, ok := entity.TryParseTick(base, quote, value, spacing)
		if !ok {
			return fmt.Errorf("price %q does not map to a tick", value)
		}
		sqrtRatio, err := tickmath.GetSqrtRatioAtTick(tick)
		if err != nil {
			return err
		}

		fmt.Printf("closest tick:   %d\n", tick)
		fmt.Printf("usable tick:    %d (spacing %d)\n", usable, spacing)
		fmt.Printf("sqrt ratio x96: %s\n", sqrtRatio.String())
		return nil
	}

	tick, _ := cmd.Flags().GetInt("tick")
	price, err := entity.TickToPrice(base, quote, tick)
	if err != nil {
		return err
	}
	sqrtRatio, err := tickmath.GetSqrtRatioAtTick(tick)
	if err != nil {
		return err
	}
	usable, err := tickmath.NearestUsableTick(tick, spacing)
	if err != nil {
		return err
	}

	fmt.Printf("price:          %s\n", price.ToSignificant(significant, fraction.RoundHalfUp))
	fmt.Printf("usable tick:    %d (spacing %d)\n", usable, spacing)
	fmt.Printf("sqrt ratio x96: %s\n", sqrtRatio.String())
	return nil
}
