package imguisys

import "context"

// runCommonBuild executes the standard 3-step build process.
//
//  1. Vendor: Copy the selected source tree into <OutDir>/include
//  2. Compile: Build the umbrella source into <OutDir>/lib (may be skipped)
//  3. Find: Locate the produced static libraries
//
// # Process Flow
//
//  1. Create empty BuildResult
//  2. Call VendorFunc to copy the sources
//  3. Check for context cancellation
//  4. Call CompileFunc to build the library
//  5. Call FindFunc to locate compiled files
//  6. Return BuildResult with Success=true
//
// If any step fails, processing stops and the error is returned
// with Success=false.
//
// # Error Handling
//
// If any step returns an error:
//   - result.Error is set to the error
//   - result.Success remains false
//   - The BuildResult and error are returned
//   - Subsequent steps are not executed
//
// Cancellation is only observed between steps; a running compiler is not
// interrupted.
func runCommonBuild(ctx context.Context, config *BuildConfig, plan *BuildPlan, steps CommonBuildSteps) (*BuildResult, error) {
	result := &BuildResult{
		Success: false,
		Output:  []string{},
	}

	fail := func(err error) (*BuildResult, error) {
		result.Error = err
		return result, err
	}

	// Step 1: Vendor the sources
	if err := steps.VendorFunc(ctx, config, plan, result); err != nil {
		return fail(err)
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	// Step 2: Compile the library
	if err := steps.CompileFunc(ctx, config, plan, result); err != nil {
		return fail(err)
	}

	// Step 3: Find the built artifacts
	artifacts, err := steps.FindFunc(plan)
	if err != nil {
		return fail(err)
	}

	// Success!
	result.Artifacts = artifacts
	result.Success = true
	return result, nil
}
