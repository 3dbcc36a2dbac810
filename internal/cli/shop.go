package cli

import (
	"errors"
	"strconv"
	"strings"

	"github.com/udisondev/questchronicles/internal/game/session"
	"github.com/udisondev/questchronicles/internal/game/shop"
	"github.com/udisondev/questchronicles/internal/model"
)

func (a *App) shopMenu(s *session.Session) error {
	c := s.Character()
	for {
		stock := shop.Listing(s.Items())

		a.printf("\n=== Shop (you have %d gold) ===\n", c.Gold())
		for i, item := range stock {
			a.printf("%d. %s [%s] - %d gold (%s, %s)\n", i+1, item.Name, item.ID, item.Cost, item.Type, item.Effect)
		}
		a.println("s. Sell an item")
		a.println("b. Back")

		answer, err := a.prompt("Choose an item to buy, or option: ")
		if err != nil {
			return err
		}

		switch strings.ToLower(answer) {
		case "b":
			return nil
		case "s":
			id, err := a.prompt("Enter item_id to sell: ")
			if err != nil {
				return err
			}
			got, err := s.Sell(id)
			if err != nil {
				a.printf("Cannot sell: %v\n", err)
				continue
			}
			a.printf("Sold %s for %d gold.\n", id, got)
		default:
			idx, err := strconv.Atoi(answer)
			if err != nil || idx < 1 || idx > len(stock) {
				a.println("Invalid input.")
				continue
			}
			item, err := s.Buy(stock[idx-1].ID)
			switch {
			case err == nil:
				a.printf("Bought %s.\n", item.Name)
			case errors.Is(err, model.ErrInsufficientResources):
				a.println("Not enough gold.")
			case errors.Is(err, model.ErrInventoryFull):
				a.println("Inventory full.")
			default:
				a.printf("Cannot buy: %v\n", err)
			}
		}
	}
}
