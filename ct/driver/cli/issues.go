package cliUtils

import (
	"fmt"
	"sync"
)

type issue struct {
	input fmt.Stringer
	err   error
}

func (i *issue) Error() error {
	return i.err
}

func (i *issue) Input() fmt.Stringer {
	return i.input
}

// IssuesCollector accumulates findings from concurrently running workers.
type IssuesCollector struct {
	issues []issue
	mu     sync.Mutex
}

func (c *IssuesCollector) AddIssue(input fmt.Stringer, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issues = append(c.issues, issue{input, err})
}

func (c *IssuesCollector) NumIssues() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.issues)
}

func (c *IssuesCollector) GetIssues() []issue {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.issues
}

// PrintIssues writes every collected finding with its reproduction input.
func (c *IssuesCollector) PrintIssues() {
	for _, issue := range c.GetIssues() {
		fmt.Printf("----------------------------\n")
		fmt.Printf("%v\n", issue.err)
		if issue.input != nil {
			fmt.Printf("Input: %v\n", issue.input)
		}
	}
}
