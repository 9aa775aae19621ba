/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: capture.go
Description: Live-DOM snapshotter using chromedp. Navigates a headless Chrome
instance, materializes an immutable ElementDescriptor tree (bottom-up, single
parent chain) plus the shadow-boundary chain for a picked element, and hands
the snapshot to the engine. The engine itself never touches the browser.
*/

package capture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/kleascm/selector-forge/pkg/interfaces"
)

// ErrElementNotFound marks a pick selector that matched nothing on the page.
var ErrElementNotFound = errors.New("element not found on page")

// maxCapturedAncestors bounds the parent chain materialized per element.
const maxCapturedAncestors = 5

// Snapshotter drives a headless browser to produce element snapshots.
type Snapshotter struct {
	ctx    context.Context
	cancel context.CancelFunc
	alloc  context.CancelFunc

	mu         sync.Mutex
	pageErrors []string
}

// NewSnapshotter creates an unstarted snapshotter.
func NewSnapshotter() *Snapshotter {
	return &Snapshotter{}
}

// Start launches the headless browser.
func (s *Snapshotter) Start(ctx context.Context) error {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	s.ctx = browserCtx
	s.cancel = browserCancel
	s.alloc = allocCancel

	// surface page-side exceptions and failed loads for diagnostics
	chromedp.ListenTarget(s.ctx, func(ev interface{}) {
		switch e := ev.(type) {
		case *runtime.EventExceptionThrown:
			s.recordPageError(e.ExceptionDetails.Error())
		case *network.EventLoadingFailed:
			s.recordPageError(fmt.Sprintf("loading failed: %s", e.ErrorText))
		}
	})

	// warm up the browser process and enable event domains
	if err := chromedp.Run(s.ctx, network.Enable(), runtime.Enable()); err != nil {
		return fmt.Errorf("starting browser: %w", err)
	}
	return nil
}

func (s *Snapshotter) recordPageError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageErrors = append(s.pageErrors, msg)
}

// PageErrors returns the page-side exceptions and load failures seen so far.
func (s *Snapshotter) PageErrors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.pageErrors))
	copy(out, s.pageErrors)
	return out
}

// Stop tears the browser down.
func (s *Snapshotter) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	if s.alloc != nil {
		s.alloc()
	}
	return nil
}

// Navigate loads a page and waits for it to be ready.
func (s *Snapshotter) Navigate(url string) error {
	if err := chromedp.Run(s.ctx, chromedp.Navigate(url), chromedp.WaitReady("body")); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

// PageHTML returns the serialized document, for selector verification.
func (s *Snapshotter) PageHTML() (string, error) {
	var html string
	if err := chromedp.Run(s.ctx, chromedp.OuterHTML("html", &html)); err != nil {
		return "", fmt.Errorf("serializing page: %w", err)
	}
	return html, nil
}

// CurrentURL returns the page's location after any client-side redirects.
func (s *Snapshotter) CurrentURL() (string, error) {
	var url string
	if err := chromedp.Run(s.ctx, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("reading location: %w", err)
	}
	return url, nil
}

// CaptureElement snapshots the first element matching pick, searching open
// shadow roots as well as the document. Returns the descriptor and the
// shadow chain enclosing it.
func (s *Snapshotter) CaptureElement(pick string) (*interfaces.ElementDescriptor, interfaces.ShadowChain, error) {
	raw, err := s.CaptureRaw(pick)
	if err != nil {
		return nil, nil, err
	}
	return DecodeSnapshot(raw)
}

// CaptureRaw returns the undecoded snapshot JSON for the element matching
// pick. Callers that persist snapshots for later selector generation use this
// form.
func (s *Snapshotter) CaptureRaw(pick string) (json.RawMessage, error) {
	var raw json.RawMessage
	expr := fmt.Sprintf("(%s)(%s)", captureScript, strconv.Quote(pick))
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(expr, &raw)); err != nil {
		return nil, fmt.Errorf("capturing element %q: %w", pick, err)
	}
	return raw, nil
}

// captureScript runs in the page. It finds the element with a shadow-aware
// search, then serializes the element, a bounded parent chain, and every
// enclosing shadow boundary from outermost to innermost.
var captureScript = fmt.Sprintf(captureScriptTemplate, maxCapturedAncestors, maxCapturedAncestors)

const captureScriptTemplate = `function(pick) {
	function find(root, sel) {
		var el = root.querySelector(sel);
		if (el) return el;
		var all = root.querySelectorAll('*');
		for (var i = 0; i < all.length; i++) {
			if (all[i].shadowRoot) {
				el = find(all[i].shadowRoot, sel);
				if (el) return el;
			}
		}
		return null;
	}
	function nthChild(el) {
		if (!el.parentElement) return 0;
		var n = 0;
		var kids = el.parentElement.children;
		for (var i = 0; i < kids.length; i++) {
			if (kids[i].tagName === el.tagName) {
				n++;
				if (kids[i] === el) return n;
			}
		}
		return 0;
	}
	function describe(el, depth) {
		if (!el || el.nodeType !== 1) return null;
		var attrs = {};
		for (var i = 0; i < el.attributes.length; i++) {
			attrs[el.attributes[i].name] = el.attributes[i].value;
		}
		var r = el.getBoundingClientRect();
		return {
			tag_name: el.tagName.toLowerCase(),
			id: el.id || "",
			classes: Array.prototype.slice.call(el.classList),
			attributes: attrs,
			geometry: {x: r.x, y: r.y, width: r.width, height: r.height},
			nth_child: nthChild(el),
			parent: depth > 0 ? describe(el.parentElement, depth - 1) : null
		};
	}
	var el = find(document, pick);
	if (!el) return null;
	var boundaries = [];
	var node = el;
	while (true) {
		var root = node.getRootNode();
		if (!root.host) break;
		boundaries.unshift({
			host: describe(root.host, %d),
			mode: root.mode || "open"
		});
		node = root.host;
	}
	return {element: describe(el, %d), shadow: boundaries};
}`

// wire mirrors the JSON emitted by captureScript.
type wireElement struct {
	TagName    string            `json:"tag_name"`
	ID         string            `json:"id"`
	Classes    []string          `json:"classes"`
	Attributes map[string]string `json:"attributes"`
	Geometry   interfaces.Rect   `json:"geometry"`
	NthChild   int               `json:"nth_child"`
	Parent     *wireElement      `json:"parent"`
}

type wireBoundary struct {
	Host *wireElement `json:"host"`
	Mode string       `json:"mode"`
}

type wireSnapshot struct {
	Element *wireElement   `json:"element"`
	Shadow  []wireBoundary `json:"shadow"`
}

// DecodeSnapshot converts the page-side JSON into engine descriptors. A JSON
// null means the pick selector matched nothing.
func DecodeSnapshot(data []byte) (*interfaces.ElementDescriptor, interfaces.ShadowChain, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil, ErrElementNotFound
	}
	var snap wireSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if snap.Element == nil {
		return nil, nil, ErrElementNotFound
	}

	chain := make(interfaces.ShadowChain, 0, len(snap.Shadow))
	for _, b := range snap.Shadow {
		mode := interfaces.ShadowOpen
		if b.Mode == "closed" {
			mode = interfaces.ShadowClosed
		}
		chain = append(chain, interfaces.ShadowBoundary{Host: toDescriptor(b.Host), Mode: mode})
	}
	return toDescriptor(snap.Element), chain, nil
}

// toDescriptor materializes the bottom-up parent chain into immutable
// descriptors.
func toDescriptor(w *wireElement) *interfaces.ElementDescriptor {
	if w == nil {
		return nil
	}
	return &interfaces.ElementDescriptor{
		TagName:    w.TagName,
		ID:         w.ID,
		Classes:    w.Classes,
		Attributes: w.Attributes,
		Geometry:   w.Geometry,
		NthChild:   w.NthChild,
		Parent:     toDescriptor(w.Parent),
	}
}
