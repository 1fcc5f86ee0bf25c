// Package mcp exposes the document query service as Model Context Protocol
// tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/normdoc"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Name identifies the server to MCP clients.
const Name = "normdoc"

// Version is reported to MCP clients.
const Version = "1.0.0"

// ListDocumentsRequest holds the list_documents tool arguments.
type ListDocumentsRequest struct {
	Type    string `json:"type"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}

// GetDocumentRequest holds the get_document tool arguments.
type GetDocumentRequest struct {
	URL string `json:"url"`
}

// SearchDocumentsRequest holds the search_documents tool arguments.
type SearchDocumentsRequest struct {
	Query string `json:"query"`
	Type  string `json:"type"`
}

// ListCategoriesRequest is the empty argument set of list_categories.
type ListCategoriesRequest struct{}

// NewServer creates an MCP server whose tools query svc.
func NewServer(svc normdoc.DocumentService) *server.MCPServer {
	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(false),
	)

	keys := normdoc.CategoryKeys(svc.Categories())

	s.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List fire safety regulatory documents of one type, one page at a time"),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Document type key"),
			mcp.Enum(keys...),
		),
		mcp.WithNumber("page",
			mcp.Description("1-based page number"),
		),
		mcp.WithNumber("per_page",
			mcp.Description(fmt.Sprintf("Documents per page, at most %d", normdoc.MaxPerPage)),
		),
	), mcp.NewTypedToolHandler(listDocumentsHandler(svc)))

	s.AddTool(mcp.NewTool("get_document",
		mcp.WithDescription("Fetch one document page and return its title, text, outline and metadata"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Absolute URL of the document page on "+normdoc.DefaultOrigin),
		),
	), mcp.NewTypedToolHandler(getDocumentHandler(svc)))

	s.AddTool(mcp.NewTool("search_documents",
		mcp.WithDescription("Find documents whose title contains the query, ignoring case"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Text to look for in document titles"),
		),
		mcp.WithString("type",
			mcp.Description("Document type key, or \"all\" to search every type"),
			mcp.Enum(append([]string{normdoc.CategoryAll}, keys...)...),
		),
	), mcp.NewTypedToolHandler(searchDocumentsHandler(svc)))

	s.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List the supported document types"),
	), mcp.NewTypedToolHandler(listCategoriesHandler(svc)))

	return s
}

func listDocumentsHandler(svc normdoc.DocumentService) func(ctx context.Context, request mcp.CallToolRequest, args ListDocumentsRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args ListDocumentsRequest) (*mcp.CallToolResult, error) {
		if args.Type == "" {
			return mcp.NewToolResultError("type is required"), nil
		}
		page, err := svc.ListDocuments(ctx, args.Type, normdoc.Pagination{Page: args.Page, PerPage: args.PerPage})
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(page), nil
	}
}

func getDocumentHandler(svc normdoc.DocumentService) func(ctx context.Context, request mcp.CallToolRequest, args GetDocumentRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args GetDocumentRequest) (*mcp.CallToolResult, error) {
		if args.URL == "" {
			return mcp.NewToolResultError("url is required"), nil
		}
		doc, err := svc.FindDocument(ctx, args.URL)
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(doc), nil
	}
}

func searchDocumentsHandler(svc normdoc.DocumentService) func(ctx context.Context, request mcp.CallToolRequest, args SearchDocumentsRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args SearchDocumentsRequest) (*mcp.CallToolResult, error) {
		if args.Query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}
		res, err := svc.SearchDocuments(ctx, normdoc.SearchQuery{Query: args.Query, Category: args.Type})
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(res), nil
	}
}

func listCategoriesHandler(svc normdoc.DocumentService) func(ctx context.Context, request mcp.CallToolRequest, args ListCategoriesRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args ListCategoriesRequest) (*mcp.CallToolResult, error) {
		return jsonResult(svc.Categories()), nil
	}
}

// errorResult reports err to the client. Internal errors carry no detail.
func errorResult(err error) *mcp.CallToolResult {
	msg := normdoc.ErrorMessage(err)
	if u := normdoc.ErrorURL(err); u != "" {
		msg += " (" + u + ")"
	}
	return mcp.NewToolResultError(normdoc.ErrorCode(err) + ": " + msg)
}

func jsonResult(v any) *mcp.CallToolResult {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err))
	}
	return mcp.NewToolResultText(string(b))
}
