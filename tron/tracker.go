package tron

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"go.uber.org/zap"
	"hexint-tracker/common"
	"hexint-tracker/config"
	"hexint-tracker/database/models"
	"hexint-tracker/types"
	"hexint-tracker/utils"
)

type NodeClient interface {
	BlockNumber(ctx context.Context) (*big.Int, error)
	GetBalance(ctx context.Context, addr string) (*big.Int, error)
}

type BalanceStore interface {
	GetLastTrackedBlockNum() uint64
	SaveTrackedBlock(height uint64, balances []*models.Balance) error
}

type Notifier interface {
	Notify(text string)
}

type watch struct {
	name      string
	address   string
	rpcAddr   string
	threshold *big.Int

	// below is set while the balance sits under threshold, so each
	// crossing is reported once
	below bool
}

// Tracker records the balance of every watched account each time the
// node reports a new head block.
type Tracker struct {
	db       BalanceStore
	client   NodeClient
	notifier Notifier
	watches  []*watch
	interval time.Duration

	// trackMu serializes TrackOnce, which owns isCatching and the watch state
	trackMu    sync.Mutex
	isCatching bool
	reporter   *utils.Reporter
	loopWG     sync.WaitGroup
	quitCh     chan struct{}
	stopOnce   sync.Once
	cancel     context.CancelFunc

	logger *zap.SugaredLogger
}

// NewTracker validates the watch list. A nil notifier only logs alerts.
func NewTracker(db BalanceStore, client NodeClient, notifier Notifier, cfg *config.TrackerConfig) (*Tracker, error) {
	t := &Tracker{
		db:       db,
		client:   client,
		notifier: notifier,
		interval: cfg.Interval(),

		isCatching: true,
		reporter: utils.NewReporter(1000, 60*time.Second, func(rs utils.ReporterState) string {
			return fmt.Sprintf("Tracked [%d] blocks in [%.2fs], speed [%.2fblocks/sec]", rs.CountInc, rs.ElapsedTime, float64(rs.CountInc)/rs.ElapsedTime)
		}),
		quitCh: make(chan struct{}),

		logger: zap.S().Named("[tracker]"),
	}

	for _, w := range cfg.Watch {
		rpcAddr, err := utils.ToRPCAddress(w.Address)
		if err != nil {
			return nil, fmt.Errorf("watch %s: %w", w.Name, err)
		}
		t.watches = append(t.watches, &watch{
			name:      w.Name,
			address:   w.Address,
			rpcAddr:   rpcAddr,
			threshold: w.Threshold.BigInt(),
		})
	}

	return t, nil
}

func (t *Tracker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel

	t.loopWG.Add(1)
	go t.loop(ctx)

	t.logger.Infof("Tracker started, watching [%d] accounts", len(t.watches))
}

func (t *Tracker) Stop() {
	t.stopOnce.Do(func() {
		close(t.quitCh)
		if t.cancel != nil {
			t.cancel()
		}
	})
	t.loopWG.Wait()
}

func (t *Tracker) Report() {
	t.logger.Infof("Status report, latest tracked block [%d], tracked [%d] blocks in total",
		t.db.GetLastTrackedBlockNum(), t.reporter.Count())
}

func (t *Tracker) loop(ctx context.Context) {
	defer t.loopWG.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		if _, err := t.TrackOnce(ctx); err != nil {
			t.logger.Errorf("Track error: [%s]", err.Error())
		}

		select {
		case <-t.quitCh:
			t.logger.Info("Tracker quit")
			return
		case <-ticker.C:
		}
	}
}

// TrackOnce records balances at the current head if it is newer than the
// last tracked block. It reports whether a new block was tracked. Balances
// are stored only once every watched account has been fetched, so a failed
// attempt leaves nothing behind. It is safe to call while the loop runs.
func (t *Tracker) TrackOnce(ctx context.Context) (bool, error) {
	t.trackMu.Lock()
	defer t.trackMu.Unlock()

	head, err := t.client.BlockNumber(ctx)
	if err != nil {
		return false, err
	}
	if !head.IsUint64() {
		return false, fmt.Errorf("block number %s out of range", common.FormatHexLower(head))
	}

	height := head.Uint64()
	last := t.db.GetLastTrackedBlockNum()
	if height <= last {
		if t.isCatching {
			t.isCatching = false
			t.logger.Infof("Caught up with the latest block [%d]", height)
		}
		return false, nil
	}

	amounts := make([]*big.Int, len(t.watches))
	balances := make([]*models.Balance, len(t.watches))
	for i, w := range t.watches {
		amount, err := t.client.GetBalance(ctx, w.rpcAddr)
		if err != nil {
			return false, fmt.Errorf("get balance of %s: %w", w.address, err)
		}
		amounts[i] = amount
		balances[i] = &models.Balance{
			Name:    w.name,
			Address: w.address,
			Height:  height,
			Amount:  types.NewHexBigInt(amount),
		}
	}

	if err = t.db.SaveTrackedBlock(height, balances); err != nil {
		return false, fmt.Errorf("save block %d: %w", height, err)
	}

	for i, w := range t.watches {
		t.checkThreshold(w, amounts[i], height)
	}

	if shouldReport, reportContent := t.reporter.Add(int(height - last)); shouldReport {
		t.logger.Info(reportContent)
	}

	return true, nil
}

func (t *Tracker) checkThreshold(w *watch, balance *big.Int, height uint64) {
	if w.threshold.Sign() == 0 {
		return
	}

	below := balance.Cmp(w.threshold) < 0
	if below == w.below {
		return
	}
	w.below = below

	var msg string
	if below {
		msg = fmt.Sprintf("Balance of [%s](%s) dropped below threshold at block [%d]: %s < %s",
			w.name, w.address, height, common.FormatDecimal(balance), common.FormatDecimal(w.threshold))
	} else {
		msg = fmt.Sprintf("Balance of [%s](%s) recovered at block [%d]: %s >= %s",
			w.name, w.address, height, common.FormatDecimal(balance), common.FormatDecimal(w.threshold))
	}

	t.logger.Warn(msg)
	if t.notifier != nil {
		t.notifier.Notify(msg)
	}
}
