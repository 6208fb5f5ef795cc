package llamacpp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"kgeyst.com/tikzgen/pkg/common"
	"kgeyst.com/tikzgen/pkg/tikzgen/domain"
)

var errUnexpectedModelOutput = errors.New("unexpected model output")

const (
	// ConfigKeyLLMInferCommand the path to the llama.cpp binary used for inference
	ConfigKeyLLMInferCommand = "llmInferCommand"
	// ConfigKeyLLMContextSize the size of the context
	ConfigKeyLLMContextSize = "llmContextSize"
	// ConfigKeyLLMCPUThreadCount the number of CPUs used during inference
	ConfigKeyLLMCPUThreadCount = "llmCPUThreadCount"
	// ConfigKeyLLMGPULayerCount how many layers in the model can be offloaded to GPU
	ConfigKeyLLMGPULayerCount = "llmGPULayerCount"
	// ConfigKeyLLMMaxTokenCount the default cap on the number of generated tokens (-1 means no cap)
	ConfigKeyLLMMaxTokenCount = "llmMaxTokenCount"
	// ConfigKeyLLMResponseTimeout when to stop if the model takes too long to process input/generate output
	ConfigKeyLLMResponseTimeout = "llmResponseTimeout"
)

// LanguageModel completes prompts by launching llama.cpp as a subprocess and streaming its standard output.
// Launching a new subprocess for each run has the following benefits:
// - full isolation (for privacy)
// - fault-tolerance: crashes in llama.cpp do not crash the host process
type LanguageModel struct {
	mutex              sync.Mutex
	name               string
	checkpoint         *domain.Checkpoint
	promptFormatter    domain.PromptFormatter
	stopCondition      domain.StopCondition
	responseCleaner    domain.ResponseCleaner
	namedMutexAcquirer domain.NamedMutexAcquirer
	logger             common.Logger
	inferCommand       string
	contextSize        int
	cpuThreadCount     int
	gpuLayerCount      int
	maxTokenCount      int
	responseTimeout    time.Duration
}

// NewLanguageModel creates a language model as implemented by llama.cpp.
// `checkpoint` points to the weight file resolved by a CheckpointRepository.
// `config` contains parameters specific to the current GPU (see the constants above).
func NewLanguageModel(
	name string,
	checkpoint *domain.Checkpoint,
	promptFormatter domain.PromptFormatter,
	stopCondition domain.StopCondition,
	responseCleaner domain.ResponseCleaner,
	namedMutexAcquirer domain.NamedMutexAcquirer,
	config *common.Config,
	logger common.Logger,
) *LanguageModel {
	return &LanguageModel{
		name:               name,
		checkpoint:         checkpoint,
		promptFormatter:    promptFormatter,
		stopCondition:      stopCondition,
		responseCleaner:    responseCleaner,
		namedMutexAcquirer: namedMutexAcquirer,
		logger:             logger,
		inferCommand:       config.GetStringOrDefault(ConfigKeyLLMInferCommand, "llama.cpp"),
		contextSize:        config.GetIntOrDefault(ConfigKeyLLMContextSize, 2048),
		cpuThreadCount:     config.GetIntOrDefault(ConfigKeyLLMCPUThreadCount, 6),
		gpuLayerCount:      config.GetIntOrDefault(ConfigKeyLLMGPULayerCount, 40),
		maxTokenCount:      config.GetIntOrDefault(ConfigKeyLLMMaxTokenCount, 1024),
		responseTimeout:    config.GetDurationOrDefault(ConfigKeyLLMResponseTimeout, 2*time.Minute),
	}
}

func (l *LanguageModel) Name() string {
	return l.name
}

func (l *LanguageModel) PromptFormatter() domain.PromptFormatter {
	return l.promptFormatter
}

func (l *LanguageModel) ResponseCleaner() domain.ResponseCleaner {
	return l.responseCleaner
}

func (l *LanguageModel) Complete(prompt string, options domain.CompleteOptions) (string, error) {
	// Only 1 request can be processed at a time currently because we run inference on commodity hardware
	// which can't usually process two requests simultaneously due to low amounts of VRAM. The named mutex
	// additionally serializes requests across processes sharing the same GPU.
	l.mutex.Lock()
	defer l.mutex.Unlock()
	namedMutex, err := l.namedMutexAcquirer.AcquireNamedMutex("llamacppInfer", l.responseTimeout)
	if err != nil {
		return "", err
	}
	defer namedMutex.Release()
	var buf strings.Builder
	err = l.runInferCommand(l.buildInferArgs(prompt, options), func(s string) bool {
		buf.WriteString(s)
		if options.OnToken != nil {
			options.OnToken(s)
		}
		return !l.stopCondition.ShouldStop(prompt, buf.String())
	})
	if err != nil {
		// A process can run successfully but be terminated with a SIGKILL for some reason (due to context cancellation?)
		// So we ignore it but log it, leaving what has been generated so far intact.
		_, ok := err.(*exec.ExitError)
		if !ok {
			l.logger.Log(err.Error() + "\n")
		}
	}
	output := buf.String()
	// llama.cpp echoes the prompt before the completion; the response cleaner strips it further.
	if len(output) < len(prompt)+1 {
		return "", errUnexpectedModelOutput
	}
	return output, nil
}

func (l *LanguageModel) buildInferArgs(prompt string, options domain.CompleteOptions) []string {
	maxTokenCount := l.maxTokenCount
	if options.MaxTokens > 0 {
		maxTokenCount = options.MaxTokens
	}
	return []string{
		"-m", l.checkpoint.Path,
		"-t", strconv.Itoa(l.cpuThreadCount),
		"-ngl", strconv.Itoa(l.gpuLayerCount),
		"-c", strconv.Itoa(l.contextSize),
		"-n", strconv.Itoa(maxTokenCount),
		"--temp", fmt.Sprintf("%f", options.TemperatureOrDefault(0.7)),
		"-p", prompt,
	}
}

// We hook up to the llama.cpp binary by launching a subprocess and reading its standard output until
// processLineFunc(..) signals it should stop with false as the returned value.
func (l *LanguageModel) runInferCommand(args []string, processLineFunc func(s string) bool) error {
	ctx, cancelFunc := context.WithDeadline(context.Background(), time.Now().Add(l.responseTimeout))
	defer cancelFunc()
	cmd := exec.CommandContext(ctx, l.inferCommand, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	// The command must be started before the scanner goroutine is spawned, otherwise a failed start
	// would leave the goroutine blocked on the pipe of a process which never ran.
	if err = cmd.Start(); err != nil {
		return err
	}
	var wg sync.WaitGroup
	wg.Add(1)
	scanner := bufio.NewScanner(stdout)
	go func() {
		for scanner.Scan() {
			line := scanner.Text() + "\n"
			keepRunning := processLineFunc(line)
			if !keepRunning {
				cancelFunc() // the process function signals we should stop because a certain condition has been met
				break
			}
		}
		wg.Done()
	}()
	wg.Wait()
	return cmd.Wait()
}
