// Package agentrun provides a Go SDK for AgentRun cloud sandboxes.
//
// AgentRun provisions isolated compute resources for AI agents: code
// interpreter sandboxes that execute code, and browser sandboxes that
// expose a remote browser over the Chrome DevTools Protocol. The SDK
// talks to a control plane for lifecycle operations and directly to
// each sandbox's data plane for execution and file transfer.
//
// # Getting Started
//
// Create a client and provision a sandbox from a template:
//
//	import "github.com/agentify-ai/agentrun-go"
//
//	client, err := agentrun.NewClient(
//	    agentrun.WithControlClient(control),
//	    agentrun.WithAccountID("acct-1234"),
//	    agentrun.WithRegion("us-east-1"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	sandbox, err := client.CreateSandbox(ctx, &agentrun.CreateSandboxParams{
//	    TemplateName: "python-3.12",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sandbox.Delete(ctx)
//
//	if _, err := sandbox.WaitUntilRunning(ctx, nil); err != nil {
//	    log.Fatal(err)
//	}
//
// # Running Code
//
// A sandbox built from a code interpreter template can execute code.
// Convert it with AsCodeInterpreter and call RunCode:
//
//	ci, err := sandbox.AsCodeInterpreter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	execution, err := ci.RunCode(ctx, "print('Hello, World!')", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(execution.Output)
//
// # Execution Contexts
//
// Contexts provide isolated state for code execution. Variables defined
// in one context are not visible from another:
//
//	execCtx, err := ci.CreateContext(ctx, &agentrun.CreateContextParams{
//	    Language: "python",
//	})
//
//	ci.RunCode(ctx, "x = 42", &agentrun.RunCodeParams{ContextID: execCtx.ID})
//
// # Filesystem
//
// Every sandbox exposes a filesystem through its Files field:
//
//	err = sandbox.Files.Write(ctx, "/tmp/hello.txt", "hello", nil)
//	content, err := sandbox.Files.Read(ctx, "/tmp/hello.txt")
//
// Large files move through Upload and Download, which stream multipart
// bodies instead of buffering content in JSON:
//
//	err = sandbox.Files.Upload(ctx, "./data.csv", "/tmp/data.csv")
//	result, err := sandbox.Files.Download(ctx, "/tmp/out.csv", "./out.csv")
//
// # Browser Sandboxes
//
// A sandbox built from a browser template exposes a CDP endpoint that
// works with chromedp, playwright and other CDP clients:
//
//	browser, err := sandbox.AsBrowser()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	wsURL, err := browser.CDPEndpoint(ctx)
//
// # Authentication
//
// Data-plane requests carry a per-resource access token fetched from the
// control plane and cached for the lifetime of the client. Supplying a
// static token with WithAccessToken bypasses the control-plane fetch
// entirely, which is useful for local development against a single
// sandbox.
//
// # Configuration
//
// Client configuration merges three layers, lowest precedence first:
// environment variables (AGENTRUN_ACCOUNT_ID, AGENTRUN_REGION and
// friends), a Config passed through WithConfig, and individual options
// such as WithTimeout. Setting AGENTRUN_DEBUG to any value other than
// "", "0" or "false" enables debug logging to stderr.
package agentrun
