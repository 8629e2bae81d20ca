package game

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/wayfarer/internal/core/board"
	"github.com/louisbranch/wayfarer/internal/game/app"
	"github.com/louisbranch/wayfarer/internal/game/domain"
	apperrors "github.com/louisbranch/wayfarer/internal/platform/errors"
)

// shell is the line-based front end over the game service. One shell serves
// one terminal; the acting player is whoever registered or logged in last.
type shell struct {
	svc *app.Service
	in  io.Reader
	out io.Writer

	playerID string
	nickname string
}

func newShell(svc *app.Service, in io.Reader, out io.Writer) *shell {
	return &shell{svc: svc, in: in, out: out}
}

func (sh *shell) run(ctx context.Context) error {
	sh.printf("Wayfarer. Type 'help' for commands.\n")
	scanner := bufio.NewScanner(sh.in)
	for {
		if sh.nickname != "" {
			sh.printf("%s> ", sh.nickname)
		} else {
			sh.printf("> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		if cmd == "quit" || cmd == "exit" {
			return nil
		}
		sh.dispatch(ctx, strings.ToLower(cmd), arg)
	}
}

func (sh *shell) dispatch(ctx context.Context, cmd, arg string) {
	switch cmd {
	case "help":
		sh.help()
	case "register":
		sh.register(ctx, arg)
	case "login":
		sh.login(ctx, arg)
	default:
		if sh.playerID == "" {
			sh.printf("register or login first\n")
			return
		}
		sh.dispatchPlayer(ctx, cmd, arg)
	}
}

func (sh *shell) dispatchPlayer(ctx context.Context, cmd, arg string) {
	switch cmd {
	case "status":
		sh.status(ctx)
	case "go":
		sh.goOut(ctx)
	case "attack":
		sh.attack(ctx, arg)
	case "fish":
		sh.fish(ctx)
	case "collection":
		sh.collection(ctx)
	case "checkin":
		sh.checkIn(ctx)
	case "shop":
		sh.shop()
	case "buy":
		sh.buy(ctx, arg)
	case "sell":
		sh.sell(ctx, arg)
	case "sellall":
		sh.sellAll(ctx, arg)
	case "give":
		sh.give(ctx, arg)
	case "equip":
		sh.equip(ctx, arg)
	case "unequip":
		sh.unequip(ctx, arg)
	case "use":
		sh.use(ctx, arg)
	case "propose":
		sh.report(sh.svc.Propose(ctx, sh.playerID, arg), "proposal sent to %s\n", arg)
	case "accept":
		sh.accept(ctx)
	case "reject":
		sh.report(sh.svc.RejectProposal(ctx, sh.playerID), "proposal rejected\n")
	case "divorce":
		sh.report(sh.svc.Divorce(ctx, sh.playerID, arg), "divorced %s\n", arg)
	case "buyprop":
		sh.buyProperty(ctx)
	case "upgrade":
		sh.upgradeProperty(ctx)
	case "properties":
		sh.properties(ctx)
	case "map":
		sh.worldMap(ctx)
	case "top":
		sh.leaderboard(ctx, arg)
	default:
		sh.printf("unknown command %q; try 'help'\n", cmd)
	}
}

func (sh *shell) help() {
	sh.printf(`commands:
  register <nickname>   create a new adventurer
  login <nickname>      continue as an existing adventurer
  status                show your sheet
  go                    roll the dice and advance on the board
  attack <nickname>     challenge another player
  fish                  cast with your best rod
  collection            your fish collection, rarest first
  checkin               claim the daily stipend
  shop | buy <item> | sell <item> | sellall [fish]
  give <nickname>, <item>
  equip <item> | unequip weapon|armor | use <item>
  propose <nickname> | accept | reject | divorce <nickname>
  buyprop | upgrade | properties | map
  top [gold]            leaderboard
  quit
`)
}

func (sh *shell) register(ctx context.Context, nickname string) {
	player, err := sh.svc.Register(ctx, nickname)
	if err != nil {
		sh.fail(err)
		return
	}
	sh.playerID = player.ID
	sh.nickname = player.Nickname
	sh.printf("welcome, %s! You start with %d gold at %s\n",
		player.Nickname, player.Gold, tileName(player.Position))
}

func (sh *shell) login(ctx context.Context, nickname string) {
	player, err := sh.svc.PlayerByNickname(ctx, nickname)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.CodeNotFound {
			sh.printf("no such player; use 'register %s'\n", nickname)
			return
		}
		sh.fail(err)
		return
	}
	sh.playerID = player.ID
	sh.nickname = player.Nickname
	sh.printf("welcome back, %s\n", player.Nickname)
}

func (sh *shell) status(ctx context.Context) {
	report, err := sh.svc.Status(ctx, sh.playerID)
	if err != nil {
		sh.fail(err)
		return
	}
	p := report.Player
	sh.printf("%s  lv %d  hp %d/%d  atk %d  def %d  gold %d\n",
		p.Nickname, p.Level, p.HP, p.MaxHP+report.BonusHP, report.TotalAttack, report.TotalDefense, p.Gold)
	sh.printf("exp %d/%d  position %d (%s)\n", p.Exp, report.ExpToLevel, p.Position, tileName(p.Position))
	if p.Equipment.Weapon != "" || p.Equipment.Armor != "" {
		sh.printf("equipped: weapon=%s armor=%s\n", orNone(p.Equipment.Weapon), orNone(p.Equipment.Armor))
	}
	if len(p.Inventory) > 0 {
		sh.printf("inventory: %s\n", strings.Join(p.Inventory, ", "))
	}
	if len(p.Spouses) > 0 {
		sh.printf("married to: %s\n", strings.Join(p.Spouses, ", "))
	}
}

func (sh *shell) goOut(ctx context.Context) {
	out, err := sh.svc.GoOut(ctx, sh.playerID)
	if err != nil {
		sh.fail(err)
		return
	}
	sh.printf("you roll a %d and arrive at %s\n", out.Roll, out.Tile.Name)
	switch {
	case out.GoldBonus > 0:
		sh.printf("the town grants you %d gold for returning home\n", out.GoldBonus)
	case out.Battle != nil:
		for _, line := range out.Battle.Log {
			sh.printf("  %s\n", line)
		}
		if out.Battle.Won {
			r := out.Battle.Reward
			sh.printf("victory! +%d exp, +%d gold\n", r.ExpGained, r.GoldGained)
			if r.LeveledUp {
				sh.printf("you reach level %d!\n", r.NewLevel)
			}
		} else {
			sh.printf("you were defeated; heal up before venturing out again\n")
		}
	case out.Event != nil:
		sh.printf("%s: %s (%+d gold)\n", out.Event.Name, out.Event.Description, out.Event.GoldDelta)
	case out.RentPaid > 0:
		sh.printf("you pay %d gold rent to %s\n", out.RentPaid, out.OwnerNickname)
	case out.RentDue > 0:
		sh.printf("you owe %s %d gold rent but cannot pay\n", out.OwnerNickname, out.RentDue)
	case out.PurchasePrice > 0:
		sh.printf("this land is for sale: %d gold ('buyprop' to purchase)\n", out.PurchasePrice)
	case out.UpgradeCost > 0:
		sh.printf("your property here can be upgraded for %d gold ('upgrade')\n", out.UpgradeCost)
	}
	sh.printf("gold: %d, hp: %d/%d\n", out.Player.Gold, out.Player.HP, out.Player.MaxHP)
}

func (sh *shell) attack(ctx context.Context, target string) {
	report, err := sh.svc.AttackPlayer(ctx, sh.playerID, target)
	if err != nil {
		sh.fail(err)
		return
	}
	for _, line := range report.Log {
		sh.printf("  %s\n", line)
	}
	if report.AttackerWon {
		sh.printf("you defeat %s and claim %d gold\n", report.Defender.Nickname, report.GoldPenalty)
	} else {
		sh.printf("%s bests you; you lose %d gold\n", report.Defender.Nickname, report.GoldPenalty)
	}
	if report.ItemDropped != "" {
		sh.printf("a %s was lost in the scuffle\n", report.ItemDropped)
	}
}

func (sh *shell) fish(ctx context.Context) {
	report, err := sh.svc.Fish(ctx, sh.playerID)
	if err != nil {
		sh.fail(err)
		return
	}
	if report.Caught {
		sh.printf("you catch a %s with your %s (+%d gold)\n", report.Fish.Name, report.RodUsed, report.Coins)
	} else {
		sh.printf("nothing bites\n")
	}
	if report.RodBroke {
		sh.printf("your %s snaps!\n", report.RodUsed)
	} else {
		sh.printf("rod durability: %d\n", report.Durability)
	}
}

func (sh *shell) collection(ctx context.Context) {
	entries, err := sh.svc.FishCollection(ctx, sh.playerID)
	if err != nil {
		sh.fail(err)
		return
	}
	caught := 0
	for _, e := range entries {
		have := "-"
		if e.Count > 0 {
			caught++
			have = fmt.Sprintf("x%d", e.Count)
		}
		sh.printf("%-16s rarity %d  %6d gold  %s\n", e.Fish.Name, e.Fish.Rarity, e.Fish.Price, have)
	}
	sh.printf("%d of %d species caught\n", caught, len(entries))
}

func (sh *shell) checkIn(ctx context.Context) {
	player, err := sh.svc.DailyCheckIn(ctx, sh.playerID)
	if err != nil {
		sh.fail(err)
		return
	}
	sh.printf("checked in: +%d gold, +%d exp (gold: %d)\n", app.CheckInGold, app.CheckInExp, player.Gold)
}

func (sh *shell) shop() {
	for _, item := range sh.svc.ShopStock() {
		sh.printf("%-20s %6d gold  %s\n", item.Name, item.Price, item.Description)
	}
}

func (sh *shell) buy(ctx context.Context, item string) {
	player, err := sh.svc.Buy(ctx, sh.playerID, item, 1)
	if err != nil {
		sh.fail(err)
		return
	}
	sh.printf("bought %s (gold: %d)\n", item, player.Gold)
}

func (sh *shell) sell(ctx context.Context, item string) {
	report, err := sh.svc.Sell(ctx, sh.playerID, item, 1)
	if err != nil {
		sh.fail(err)
		return
	}
	sh.printf("sold %s for %d gold (gold: %d)\n", item, report.GoldPaid, report.Player.Gold)
}

func (sh *shell) sellAll(ctx context.Context, arg string) {
	kind := domain.ItemKind("")
	if strings.EqualFold(arg, "fish") {
		kind = domain.ItemFish
	}
	report, err := sh.svc.SellAll(ctx, sh.playerID, kind)
	if err != nil {
		sh.fail(err)
		return
	}
	sh.printf("sold %d items for %d gold (gold: %d)\n", len(report.Sold), report.GoldPaid, report.Player.Gold)
}

func (sh *shell) give(ctx context.Context, arg string) {
	nickname, item, ok := strings.Cut(arg, ",")
	if !ok {
		sh.printf("usage: give <nickname>, <item>\n")
		return
	}
	nickname = strings.TrimSpace(nickname)
	item = strings.TrimSpace(item)
	sh.report(sh.svc.GiveItem(ctx, sh.playerID, nickname, item, 1), "gave %s to %s\n", item, nickname)
}

func (sh *shell) equip(ctx context.Context, item string) {
	player, err := sh.svc.Equip(ctx, sh.playerID, item)
	if err != nil {
		sh.fail(err)
		return
	}
	sh.printf("equipped: weapon=%s armor=%s\n", orNone(player.Equipment.Weapon), orNone(player.Equipment.Armor))
}

func (sh *shell) unequip(ctx context.Context, slot string) {
	var kind domain.ItemKind
	switch strings.ToLower(slot) {
	case "weapon":
		kind = domain.ItemWeapon
	case "armor":
		kind = domain.ItemArmor
	default:
		sh.printf("usage: unequip weapon|armor\n")
		return
	}
	if _, err := sh.svc.Unequip(ctx, sh.playerID, kind); err != nil {
		sh.fail(err)
		return
	}
	sh.printf("unequipped %s\n", slot)
}

func (sh *shell) use(ctx context.Context, item string) {
	player, healed, err := sh.svc.UseItem(ctx, sh.playerID, item, 1)
	if err != nil {
		sh.fail(err)
		return
	}
	sh.printf("used %s: +%d hp (%d/%d)\n", item, healed, player.HP, player.MaxHP)
}

func (sh *shell) accept(ctx context.Context) {
	player, err := sh.svc.AcceptProposal(ctx, sh.playerID)
	if err != nil {
		sh.fail(err)
		return
	}
	sh.printf("congratulations! married to: %s\n", strings.Join(player.Spouses, ", "))
}

func (sh *shell) buyProperty(ctx context.Context) {
	player, property, err := sh.svc.BuyProperty(ctx, sh.playerID)
	if err != nil {
		sh.fail(err)
		return
	}
	sh.printf("you now own %s (level %d, gold: %d)\n", tileName(property.Position), property.Level, player.Gold)
}

func (sh *shell) upgradeProperty(ctx context.Context) {
	player, property, err := sh.svc.UpgradeProperty(ctx, sh.playerID)
	if err != nil {
		sh.fail(err)
		return
	}
	sh.printf("%s upgraded to level %d (gold: %d)\n", tileName(property.Position), property.Level, player.Gold)
}

func (sh *shell) properties(ctx context.Context) {
	holdings, err := sh.svc.Properties(ctx, sh.playerID)
	if err != nil {
		sh.fail(err)
		return
	}
	if len(holdings) == 0 {
		sh.printf("you own no land yet\n")
		return
	}
	for _, h := range holdings {
		line := fmt.Sprintf("%-20s lv %d  rent %d", h.Tile.Name, h.Level, h.Rent)
		if h.UpgradeCost > 0 {
			line += fmt.Sprintf("  upgrade %d", h.UpgradeCost)
		}
		sh.printf("%s\n", line)
	}
}

func (sh *shell) worldMap(ctx context.Context) {
	view, err := sh.svc.Map(ctx)
	if err != nil {
		sh.fail(err)
		return
	}
	for _, mt := range view {
		if mt.PurchasePrice == 0 {
			continue
		}
		owner := "for sale"
		if mt.OwnerNickname != "" {
			owner = fmt.Sprintf("%s lv %d", mt.OwnerNickname, mt.Level)
		}
		sh.printf("%2d %-20s %6d gold  %s\n", mt.Tile.Position, mt.Tile.Name, mt.PurchasePrice, owner)
	}
}

func (sh *shell) leaderboard(ctx context.Context, arg string) {
	by := app.ByLevel
	if strings.EqualFold(arg, "gold") {
		by = app.ByGold
	}
	ranking, err := sh.svc.Leaderboard(ctx, sh.playerID, by, 10)
	if err != nil {
		sh.fail(err)
		return
	}
	for i, p := range ranking.Top {
		sh.printf("%2d. %-16s lv %d  exp %d  gold %d\n", i+1, p.Nickname, p.Level, p.Exp, p.Gold)
	}
	if ranking.Rank > 0 {
		sh.printf("your rank: %d\n", ranking.Rank)
	}
}

func tileName(position int) string {
	return board.TileAt(position).Name
}

func orNone(name string) string {
	if name == "" {
		return "none"
	}
	return name
}

// report prints the success message unless err is set.
func (sh *shell) report(err error, format string, args ...any) {
	if err != nil {
		sh.fail(err)
		return
	}
	sh.printf(format, args...)
}

func (sh *shell) printf(format string, args ...any) {
	fmt.Fprintf(sh.out, format, args...)
}

// fail translates a typed domain error into user text.
func (sh *shell) fail(err error) {
	var e *apperrors.Error
	meta := map[string]string{}
	if errors.As(err, &e) && e.Metadata != nil {
		meta = e.Metadata
	}

	switch apperrors.GetCode(err) {
	case apperrors.CodeCooldownActive:
		sh.printf("not so fast: wait %s more seconds\n", meta["seconds"])
	case apperrors.CodeInsufficientFunds:
		sh.printf("not enough gold (need %s, have %s)\n", meta["required"], meta["available"])
	case apperrors.CodeNotFound:
		sh.printf("no such player\n")
	case apperrors.CodePlayerAlreadyRegistered:
		sh.printf("that nickname is taken\n")
	case apperrors.CodePlayerEmptyNickname:
		sh.printf("a nickname is required\n")
	case apperrors.CodePlayerDown:
		sh.printf("you have no HP left; use a healing item first\n")
	case apperrors.CodeBattleCombatantDown:
		sh.printf("your target is already down\n")
	case apperrors.CodeBattleSelfTarget, apperrors.CodeSelfTarget:
		sh.printf("you cannot target yourself\n")
	case apperrors.CodeItemUnknown:
		sh.printf("no such item: %s\n", meta["item"])
	case apperrors.CodeItemNotOwned:
		sh.printf("you do not have that item to spare\n")
	case apperrors.CodeItemNotEquipable:
		sh.printf("that cannot be equipped\n")
	case apperrors.CodeItemNotUsable:
		sh.printf("that cannot be used\n")
	case apperrors.CodeTileNotOwnable:
		sh.printf("this land cannot be owned\n")
	case apperrors.CodePropertyOwned:
		sh.printf("someone already owns this land\n")
	case apperrors.CodePropertyNotOwned:
		sh.printf("nobody owns this land\n")
	case apperrors.CodePropertyNotYours:
		sh.printf("this land belongs to someone else\n")
	case apperrors.CodePropertyLevelCap:
		sh.printf("this property is fully upgraded\n")
	case apperrors.CodeCheckInAlreadyDone:
		sh.printf("you already checked in today\n")
	case apperrors.CodeFishingRodMissing:
		sh.printf("you need a fishing rod; the shop sells them\n")
	case apperrors.CodeProposalPending:
		sh.printf("they are already weighing another proposal\n")
	case apperrors.CodeProposalMissing:
		sh.printf("there is no proposal to answer\n")
	case apperrors.CodeAlreadyMarried:
		sh.printf("you are already married to them\n")
	case apperrors.CodeNotMarried:
		sh.printf("you are not married to them\n")
	default:
		sh.printf("error: %v\n", err)
	}
}
