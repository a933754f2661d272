package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/xKoRx/bridge/domain"
	"github.com/xKoRx/bridge/internal"
	"github.com/xKoRx/bridge/telemetry"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	switch command {
	case "serve":
		runServe(os.Args[2:])
	case "symbol":
		runSymbol(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "comando desconocido: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := `bridge-cli - herramientas operativas para el NT→MT5 Bridge

Uso:
  bridge-cli serve [--port 5000] [--queue-mode fifo|latest]
  bridge-cli symbol resolve --instrument <id>

Comandos:
  serve            Levanta el bridge HTTP (submit NT8 + polling MT5).
  symbol resolve   Muestra el símbolo MT5 al que mapea un instrumento NT.
`
	fmt.Fprintln(os.Stderr, usage)
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.Int("port", 0, "Puerto HTTP (override de config)")
	queueMode := fs.String("queue-mode", "", "Semántica de la cola: fifo|latest (override de config)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "error parseando flags: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := internal.LoadConfig(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error cargando config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.HTTPPort = *port
	}
	if *queueMode != "" {
		cfg.QueueMode = internal.QueueMode(*queueMode)
	}

	telOpts := []telemetry.Option{telemetry.WithVersion(cfg.ServiceVersion)}
	if cfg.OTLPEndpoint != "" {
		telOpts = append(telOpts, telemetry.WithOTLPEndpoint(cfg.OTLPEndpoint))
	}
	tel, err := telemetry.New(ctx, cfg.ServiceName, cfg.Environment, telOpts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error inicializando telemetría: %v\n", err)
		os.Exit(1)
	}
	defer tel.Shutdown(context.Background())

	bridge, err := internal.NewBridge(ctx, cfg, tel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creando bridge: %v\n", err)
		os.Exit(1)
	}

	// Shutdown ordenado en SIGINT/SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		bridge.Stop()
	}()

	if err := bridge.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "bridge terminó con error: %v\n", err)
		os.Exit(1)
	}
}

func runSymbol(args []string) {
	if len(args) == 0 || args[0] != "resolve" {
		printUsage()
		os.Exit(1)
	}

	fs := flag.NewFlagSet("symbol resolve", flag.ExitOnError)
	instrument := fs.String("instrument", "", "Instrumento NT a resolver (ej: 'NQ MAR24', 'NQ@E-MINI')")
	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error parseando flags: %v\n", err)
		os.Exit(1)
	}

	if *instrument == "" {
		fmt.Fprintln(os.Stderr, "--instrument es requerido")
		fs.Usage()
		os.Exit(1)
	}

	mapper := domain.NewDefaultMapper()
	fmt.Printf("%s -> %s\n", *instrument, mapper.Map(*instrument))
}
