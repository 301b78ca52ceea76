// Command goldwatch shows the rolling gold price of a running server in the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"goldsite/config"
	"goldsite/internal/poller"
	"goldsite/internal/stream"
	"goldsite/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log, "goldwatch")
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	mode, err := poller.ParseMode(cfg.Watch.Mode)
	if err != nil {
		log.Fatal("invalid watch mode", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Watch.Transport {
	case "stream":
		client, err := stream.NewClient(cfg.Watch.ServerURL, mode, log)
		if err != nil {
			log.Fatal("invalid server url", zap.Error(err))
		}
		client.SetMessageHandler(func(m stream.Message) {
			if m.View != nil {
				render(*m.View)
			}
		})
		if err := client.Connect(ctx); err != nil {
			log.Fatal("failed to connect to price stream", zap.Error(err))
		}
		client.Listen(ctx)

	default:
		source := poller.NewHTTPSource(cfg.Watch.ServerURL, cfg.Watch.Timeout)
		p := poller.New(source, log,
			poller.WithMode(mode),
			poller.WithFetchTimeout(cfg.Watch.Timeout),
			poller.WithListener(render),
		)

		p.Open(ctx)
		<-ctx.Done()
		p.Close()
	}
}

func render(v poller.View) {
	marker := ""
	if v.Simulated {
		marker = " (simulated)"
	}

	lo, hi := v.History[0], v.History[0]
	for _, h := range v.History {
		lo = min(lo, h)
		hi = max(hi, h)
	}

	fmt.Printf("[%s] 24K %s/g  sell %s  buy %s  22K %.2f  18K %.2f  oz %.2f  range %.2f-%.2f over %d%s\n",
		v.Mode,
		v.Readout.BuyText,
		v.Readout.SellText,
		v.Readout.BuyText,
		v.Quote.TwentyTwoK,
		v.Quote.EighteenK,
		v.Quote.Ounce,
		lo, hi, len(v.History),
		marker,
	)
}
